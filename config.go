package intl

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config captures translator, plural and date formatter setup
type Config struct {
	DefaultLocale string
	Locales       []string
	Loader        Loader
	Store         Store
	Resolver      FallbackResolver
	Formatter     Formatter
	Hooks         []TranslationHook
	Logger        *zap.Logger

	pluralRuleFiles  []string
	pluralTables     PluralRuleTables
	datePatternFiles []string
	datePatterns     map[string]string
	serverTimeZone   string
	systemLocale     func() (string, error)

	dates    *DateFormatter
	registry *HelperRegistry
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	cfg.normalizeLocales()

	if cfg.DefaultLocale == "" {
		if len(cfg.Locales) > 0 {
			cfg.DefaultLocale = cfg.Locales[0]
		} else {
			cfg.DefaultLocale = defaultLocale
		}
	}

	if err := cfg.loadPluralRules(); err != nil {
		return nil, err
	}

	if err := cfg.buildDateFormatter(); err != nil {
		return nil, err
	}

	if cfg.Store == nil {
		if err := cfg.buildStore(); err != nil {
			return nil, err
		}
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}
	if resolver, ok := cfg.Resolver.(*StaticFallbackResolver); ok {
		resolver.SeedParents(cfg.Locales...)
	}

	if cfg.Formatter == nil {
		cfg.Formatter = FormatterFunc(sprintfFormatter)
	}

	registry, err := NewHelperRegistry(
		WithHelperLocales(append([]string{cfg.DefaultLocale}, cfg.Locales...)...),
		WithHelperResolver(cfg.Resolver),
		WithHelperDateFormatter(cfg.dates),
		WithHelperPluralRules(cfg.pluralTables),
		WithHelperLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	cfg.registry = registry

	return cfg, nil
}

// WithDefaultLocale sets the default locale in Config
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = normalizeLocale(locale)
		return nil
	}
}

// WithLocales registers supported locales
func WithLocales(locales ...string) Option {
	return func(c *Config) error {
		c.Locales = append(c.Locales, locales...)
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

func WithStore(store Store) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

func WithFormatter(formatter Formatter) Option {
	return func(c *Config) error {
		c.Formatter = formatter
		return nil
	}
}

func WithTranslatorHooks(hooks ...TranslationHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// WithPluralRuleFiles loads custom plural rule sets that override the
// built-in CLDR tables for the locales they define.
func WithPluralRuleFiles(paths ...string) Option {
	return func(c *Config) error {
		c.pluralRuleFiles = append(c.pluralRuleFiles, paths...)
		return nil
	}
}

// WithCustomPluralRules merges rule sets built in code.
func WithCustomPluralRules(tables PluralRuleTables) Option {
	return func(c *Config) error {
		if c.pluralTables == nil {
			c.pluralTables = make(PluralRuleTables)
		}
		c.pluralTables.Merge(tables)
		return nil
	}
}

// WithDatePatternFiles loads numeric date pattern overrides.
func WithDatePatternFiles(paths ...string) Option {
	return func(c *Config) error {
		c.datePatternFiles = append(c.datePatternFiles, paths...)
		return nil
	}
}

func WithDatePatternOverride(locale, pattern string) Option {
	return func(c *Config) error {
		if _, err := parseDatePattern(pattern); err != nil {
			return fmt.Errorf("intl: date pattern for %q: %w", locale, err)
		}
		if c.datePatterns == nil {
			c.datePatterns = make(map[string]string)
		}
		c.datePatterns[normalizeLocale(locale)] = pattern
		return nil
	}
}

// WithServerTimeZone sets the IANA zone used for TimeZoneServer.
func WithServerTimeZone(zone string) Option {
	return func(c *Config) error {
		c.serverTimeZone = zone
		return nil
	}
}

// WithHostLocale overrides detection of the host locale used by DateFormatSystem.
func WithHostLocale(detect func() (string, error)) Option {
	return func(c *Config) error {
		c.systemLocale = detect
		return nil
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithSettings applies file based settings. Options after it may override them.
func WithSettings(s *Settings) Option {
	return func(c *Config) error {
		if s == nil {
			return nil
		}
		if s.DefaultLocale != "" {
			c.DefaultLocale = normalizeLocale(s.DefaultLocale)
		}
		c.Locales = append(c.Locales, s.Locales...)
		if len(s.Translations) > 0 {
			c.Loader = NewFileLoader(s.Translations...)
		}
		c.pluralRuleFiles = append(c.pluralRuleFiles, s.PluralRules...)
		c.datePatternFiles = append(c.datePatternFiles, s.DatePatterns...)
		if s.ServerTimeZone != "" {
			c.serverTimeZone = s.ServerTimeZone
		}
		for locale, fallbacks := range s.Fallbacks {
			if err := WithFallback(locale, fallbacks...)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

func (cfg *Config) BuildTranslator() (Translator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidArgument)
	}

	base, err := NewSimpleTranslator(cfg.Store,
		WithTranslatorDefaultLocale(cfg.DefaultLocale),
		WithTranslatorFormatter(cfg.Formatter),
		WithTranslatorFallbackResolver(cfg.Resolver),
		WithTranslatorPluralRules(cfg.pluralTables),
		WithTranslatorLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}

	var translator Translator = base
	if len(cfg.Hooks) > 0 {
		translator = WrapTranslatorWithHooks(translator, cfg.Hooks...)
	}

	return translator, nil
}

// PluralRules builds plural rules for locale using the configured rule tables.
func (cfg *Config) PluralRules(locale string, opts ...PluralRulesOption) (*PluralRules, error) {
	if locale == "" {
		locale = cfg.DefaultLocale
	}
	base := []PluralRulesOption{
		WithPluralRuleTables(cfg.pluralTables),
		WithPluralLogger(cfg.Logger),
	}
	return NewPluralRules(locale, append(base, opts...)...)
}

// PluralRuleTables returns the custom rule sets loaded from files and options.
func (cfg *Config) PluralRuleTables() PluralRuleTables {
	return cfg.pluralTables
}

func (cfg *Config) DateFormatter() *DateFormatter {
	return cfg.dates
}

// FormatDateNumeric formats t with the configured date formatter. An empty
// language uses the default locale.
func (cfg *Config) FormatDateNumeric(t time.Time, locale LocaleConfig) (string, error) {
	if locale.Language == "" {
		locale.Language = cfg.DefaultLocale
	}
	return cfg.dates.FormatDateNumeric(t, locale)
}

func (cfg *Config) HelperRegistry() *HelperRegistry {
	return cfg.registry
}

func (cfg *Config) TemplateHelpers(t Translator, helperCfg HelperConfig) map[string]any {
	if cfg == nil {
		return TemplateHelpers(t, helperCfg)
	}
	if helperCfg.Registry == nil {
		helperCfg.Registry = cfg.registry
	}
	return TemplateHelpers(t, helperCfg)
}

func (cfg *Config) normalizeLocales() {
	cfg.Locales = normalizeLocales(cfg.Locales)
}

func (cfg *Config) loadPluralRules() error {
	if len(cfg.pluralRuleFiles) == 0 {
		return nil
	}

	tables, err := LoadPluralRuleFiles(cfg.pluralRuleFiles...)
	if err != nil {
		return err
	}
	if cfg.pluralTables == nil {
		cfg.pluralTables = make(PluralRuleTables)
	}
	cfg.pluralTables.Merge(tables)

	cfg.Logger.Debug("loaded plural rule files",
		zap.Strings("paths", cfg.pluralRuleFiles),
		zap.Strings("cardinal", cfg.pluralTables.Locales(PluralCardinal)),
		zap.Strings("ordinal", cfg.pluralTables.Locales(PluralOrdinal)),
	)
	return nil
}

// buildStore loads the configured catalogs, checking plural variants against
// the same rule tables the translator selects with.
func (cfg *Config) buildStore() error {
	if cfg.Loader == nil {
		cfg.Store = NewStaticStore(nil)
		return nil
	}

	loader := cfg.Loader
	if fl, ok := loader.(*FileLoader); ok {
		loader = fl.WithPluralRules(cfg.pluralTables)
	}
	translations, err := loader.Load()
	if err != nil {
		return err
	}

	for _, issue := range CheckPluralCatalogs(translations, cfg.pluralTables) {
		if len(issue.Missing) == 0 {
			continue
		}
		cfg.Logger.Warn("plural message lacks categories, other form will be used",
			zap.String("locale", issue.Locale),
			zap.String("key", issue.Key),
			zap.String("missing", joinCategories(issue.Missing)),
		)
	}

	cfg.Store = NewStaticStore(translations)
	return nil
}

func (cfg *Config) buildDateFormatter() error {
	patterns := make(map[string]string)
	if len(cfg.datePatternFiles) > 0 {
		loaded, err := LoadDatePatternFiles(cfg.datePatternFiles...)
		if err != nil {
			return err
		}
		for locale, pattern := range loaded {
			patterns[locale] = pattern
		}
	}
	for locale, pattern := range cfg.datePatterns {
		patterns[locale] = pattern
	}

	opts := []DateFormatterOption{
		WithDatePatterns(patterns),
		WithDateServerTimeZone(cfg.serverTimeZone),
		WithDateLogger(cfg.Logger),
	}
	if cfg.systemLocale != nil {
		opts = append(opts, WithDateSystemLocale(cfg.systemLocale))
	}

	dates, err := NewDateFormatter(opts...)
	if err != nil {
		return err
	}
	cfg.dates = dates
	return nil
}
