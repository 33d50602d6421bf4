package intl

import (
	"maps"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Helper names registered by default.
const (
	HelperPluralCategory    = "plural"
	HelperOrdinalCategory   = "ordinal"
	HelperPluralCategories  = "plural_categories"
	HelperFormatDateNumeric = "format_date_numeric"
	HelperDateParts         = "date_parts"
	HelperFormatNumber      = "format_number"
)

// HelperProvider returns helper overrides for a locale.
type HelperProvider func(locale string) map[string]any

// HelperRegistry manages locale aware helper functions and per-locale overrides
type HelperRegistry struct {
	mu        sync.RWMutex
	defaults  map[string]any
	overrides map[string]map[string]any
	providers map[string]HelperProvider
	funcCache map[string]map[string]any
	resolver  FallbackResolver
	locales   []string

	dates  *DateFormatter
	tables PluralRuleTables
	logger *zap.Logger

	rulesMu sync.RWMutex
	rules   map[pluralRulesKey]*PluralRules
}

type pluralRulesKey struct {
	locale string
	typ    PluralType
}

type helperRegistryConfig struct {
	resolver  FallbackResolver
	locales   []string
	providers map[string]HelperProvider
	dates     *DateFormatter
	tables    PluralRuleTables
	logger    *zap.Logger
}

type HelperRegistryOption func(*helperRegistryConfig)

func WithHelperResolver(resolver FallbackResolver) HelperRegistryOption {
	return func(cfg *helperRegistryConfig) {
		cfg.resolver = resolver
	}
}

// WithHelperLocales sets the supported locales; the first one is the default.
func WithHelperLocales(locales ...string) HelperRegistryOption {
	return func(cfg *helperRegistryConfig) {
		cfg.locales = append(cfg.locales, locales...)
	}
}

func WithHelperProvider(locale string, provider HelperProvider) HelperRegistryOption {
	return func(cfg *helperRegistryConfig) {
		if cfg.providers == nil {
			cfg.providers = make(map[string]HelperProvider)
		}
		cfg.providers[locale] = provider
	}
}

func WithHelperDateFormatter(formatter *DateFormatter) HelperRegistryOption {
	return func(cfg *helperRegistryConfig) {
		cfg.dates = formatter
	}
}

func WithHelperPluralRules(tables PluralRuleTables) HelperRegistryOption {
	return func(cfg *helperRegistryConfig) {
		cfg.tables = tables
	}
}

func WithHelperLogger(logger *zap.Logger) HelperRegistryOption {
	return func(cfg *helperRegistryConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func NewHelperRegistry(opts ...HelperRegistryOption) (*HelperRegistry, error) {
	cfg := helperRegistryConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.dates == nil {
		dates, err := NewDateFormatter(WithDateLogger(cfg.logger))
		if err != nil {
			return nil, err
		}
		cfg.dates = dates
	}

	// keep the configured order, the first locale is the default
	locales := make([]string, 0, len(cfg.locales))
	for _, locale := range cfg.locales {
		locale = normalizeLocale(locale)
		if locale == "" || containsLocale(locales, locale) {
			continue
		}
		locales = append(locales, locale)
	}

	registry := &HelperRegistry{
		overrides: make(map[string]map[string]any),
		providers: make(map[string]HelperProvider),
		resolver:  cfg.resolver,
		locales:   locales,
		dates:     cfg.dates,
		tables:    cfg.tables,
		logger:    cfg.logger,
		rules:     make(map[pluralRulesKey]*PluralRules),
	}
	registry.defaults = registry.defaultHelpers()

	for locale, provider := range cfg.providers {
		registry.RegisterProvider(locale, provider)
	}
	registry.seedFallbacks()

	return registry, nil
}

func (r *HelperRegistry) defaultHelpers() map[string]any {
	return map[string]any{
		HelperPluralCategory: func(locale string, value any) (string, error) {
			return r.category(locale, PluralCardinal, value)
		},
		HelperOrdinalCategory: func(locale string, value any) (string, error) {
			return r.category(locale, PluralOrdinal, value)
		},
		HelperPluralCategories: func(locale string) ([]string, error) {
			rules, err := r.pluralRules(locale, PluralCardinal)
			if err != nil {
				return nil, err
			}
			categories := rules.Categories()
			out := make([]string, len(categories))
			for i, category := range categories {
				out[i] = string(category)
			}
			return out, nil
		},
		HelperFormatNumber: func(locale string, value any) (string, error) {
			rules, err := r.pluralRules(locale, PluralCardinal)
			if err != nil {
				return "", err
			}
			return rules.FormatNumber(value)
		},
		HelperFormatDateNumeric: func(locale string, value time.Time, options ...string) (string, error) {
			cfg := LocaleConfig{Language: locale}
			if len(options) > 0 {
				order, err := ParseDateFormatOrder(options[0])
				if err != nil {
					return "", err
				}
				cfg.DateFormat = order
			}
			if len(options) > 1 {
				cfg.TimeZone = TimeZoneOption(options[1])
			}
			return r.dates.FormatDateNumeric(value, cfg)
		},
		HelperDateParts: func(locale string, value time.Time) ([]DatePart, error) {
			return r.dates.FormatToParts(value, locale, nil)
		},
	}
}

func (r *HelperRegistry) category(locale string, typ PluralType, value any) (string, error) {
	rules, err := r.pluralRules(locale, typ)
	if err != nil {
		return string(PluralOther), err
	}
	category, err := rules.Select(value)
	return string(category), err
}

func (r *HelperRegistry) pluralRules(locale string, typ PluralType) (*PluralRules, error) {
	if locale == "" {
		locale = r.defaultLocale()
	}
	key := pluralRulesKey{locale: normalizeLocale(locale), typ: typ}

	r.rulesMu.RLock()
	rules, ok := r.rules[key]
	r.rulesMu.RUnlock()
	if ok {
		return rules, nil
	}

	rules, err := NewPluralRules(key.locale,
		WithPluralType(typ),
		WithPluralRuleTables(r.tables),
		WithPluralLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}

	r.rulesMu.Lock()
	r.rules[key] = rules
	r.rulesMu.Unlock()

	return rules, nil
}

// Register sets or replaces the default implementation for the <name> helper
func (r *HelperRegistry) Register(name string, fn any) {
	if name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaults == nil {
		r.defaults = make(map[string]any)
	}
	r.defaults[name] = fn
	r.invalidateFuncCacheLocked()
}

// RegisterLocale registers a locale specific override for the <name> helper
func (r *HelperRegistry) RegisterLocale(locale, name string, fn any) {
	locale = normalizeLocale(locale)
	if locale == "" || name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	helpers := r.overrides[locale]
	if helpers == nil {
		helpers = make(map[string]any)
		r.overrides[locale] = helpers
	}
	helpers[name] = fn
	r.invalidateFuncCacheLocked()
}

func (r *HelperRegistry) RegisterProvider(locale string, provider HelperProvider) {
	locale = normalizeLocale(locale)
	if locale == "" || provider == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[locale] = provider
	r.invalidateFuncCacheLocked()
}

// Helper returns the implementation of name for locale.
func (r *HelperRegistry) Helper(name, locale string) (any, bool) {
	if r == nil || name == "" {
		return nil, false
	}

	fn, ok := r.funcMapForLocale(locale)[name]
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}

// FuncMap returns all helpers applicable to locale
func (r *HelperRegistry) FuncMap(locale string) map[string]any {
	if r == nil {
		return map[string]any{}
	}
	return maps.Clone(r.funcMapForLocale(locale))
}

// Names lists the registered helper names in sorted order.
func (r *HelperRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defaults))
	for name := range r.defaults {
		names = append(names, name)
	}
	for _, helpers := range r.overrides {
		for name := range helpers {
			if !containsLocale(names, name) {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// DateFormatter returns the formatter backing the date helpers.
func (r *HelperRegistry) DateFormatter() *DateFormatter {
	if r == nil {
		return nil
	}
	return r.dates
}

func (r *HelperRegistry) funcMapForLocale(locale string) map[string]any {
	key := normalizeLocale(locale)

	r.mu.RLock()
	if cached, ok := r.funcCache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcCache == nil {
		r.funcCache = make(map[string]map[string]any)
	} else if cached, ok := r.funcCache[key]; ok {
		return cached
	}

	effective := key
	if effective == "" {
		effective = r.defaultLocale()
	}

	result := make(map[string]any, len(r.defaults))
	maps.Copy(result, r.defaults)

	if effective != "" {
		candidates := r.candidateLocales(effective)

		// least specific first so the requested locale wins
		for i := len(candidates) - 1; i >= 0; i-- {
			candidate := candidates[i]

			if provider, ok := r.providers[candidate]; ok && provider != nil {
				if helpers := provider(candidate); helpers != nil {
					maps.Copy(result, helpers)
				}
			}

			if helpers, ok := r.overrides[candidate]; ok {
				maps.Copy(result, helpers)
			}
		}
	}

	r.funcCache[key] = result
	return result
}

func (r *HelperRegistry) invalidateFuncCacheLocked() {
	r.funcCache = nil
}

func (r *HelperRegistry) candidateLocales(locale string) []string {
	if locale == "" {
		return nil
	}

	chain := []string{locale}
	if r.resolver != nil {
		for _, parent := range r.resolver.Resolve(locale) {
			if parent == "" || containsLocale(chain, parent) {
				continue
			}
			chain = append(chain, parent)
		}
	}

	return chain
}

func (r *HelperRegistry) seedFallbacks() {
	resolver, ok := r.resolver.(*StaticFallbackResolver)
	if !ok || resolver == nil {
		return
	}
	resolver.SeedParents(r.locales...)
}

func (r *HelperRegistry) defaultLocale() string {
	if r == nil || len(r.locales) == 0 {
		return defaultLocale
	}
	return r.locales[0]
}
