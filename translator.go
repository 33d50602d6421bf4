package intl

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const countPlaceholder = "{count}"

const (
	metadataPluralCategory = "plural.category"
	metadataPluralCount    = "plural.count"
	metadataPluralMessage  = "plural.message"
	metadataPluralMissing  = "plural.missing"
	metadataLocale         = "locale.resolved"
)

// Translator resolves a string for a given locale and message key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// metadataTranslator is implemented by translators that can report how a
// message was resolved.
type metadataTranslator interface {
	TranslateWithMetadata(locale, key string, args ...any) (string, map[string]any, error)
}

// Formatter renders a template with positional arguments
type Formatter interface {
	Format(template string, args ...any) (string, error)
}

type FormatterFunc func(template string, args ...any) (string, error)

func (fn FormatterFunc) Format(template string, args ...any) (string, error) {
	return fn(template, args...)
}

func sprintfFormatter(template string, args ...any) (string, error) {
	if len(args) == 0 {
		return template, nil
	}
	return fmt.Sprintf(template, args...), nil
}

// Count marks the value used to select a plural variant. It is removed from
// the arguments passed to the formatter.
type Count struct {
	Value any
}

// WithCount wraps value as the plural selector for Translate.
func WithCount(value any) Count {
	return Count{Value: value}
}

type SimpleTranslator struct {
	store         Store
	defaultLocale string
	formatter     Formatter
	resolver      FallbackResolver
	pluralTables  PluralRuleTables
	logger        *zap.Logger

	mu    sync.RWMutex
	rules map[string]*PluralRules
}

var (
	_ Translator         = &SimpleTranslator{}
	_ metadataTranslator = &SimpleTranslator{}
)

type TranslatorOption func(*SimpleTranslator)

func WithTranslatorDefaultLocale(locale string) TranslatorOption {
	return func(t *SimpleTranslator) {
		t.defaultLocale = normalizeLocale(locale)
	}
}

func WithTranslatorFormatter(formatter Formatter) TranslatorOption {
	return func(t *SimpleTranslator) {
		if formatter != nil {
			t.formatter = formatter
		}
	}
}

func WithTranslatorFallbackResolver(resolver FallbackResolver) TranslatorOption {
	return func(t *SimpleTranslator) {
		t.resolver = resolver
	}
}

// WithTranslatorPluralRules sets custom plural rule tables used for variant selection.
func WithTranslatorPluralRules(tables PluralRuleTables) TranslatorOption {
	return func(t *SimpleTranslator) {
		t.pluralTables = tables
	}
}

func WithTranslatorLogger(logger *zap.Logger) TranslatorOption {
	return func(t *SimpleTranslator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func NewSimpleTranslator(store Store, opts ...TranslatorOption) (*SimpleTranslator, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidArgument)
	}

	t := &SimpleTranslator{
		store:     store,
		formatter: FormatterFunc(sprintfFormatter),
		logger:    zap.NewNop(),
		rules:     make(map[string]*PluralRules),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(t)
	}

	return t, nil
}

func (t *SimpleTranslator) Translate(locale, key string, args ...any) (string, error) {
	result, _, err := t.TranslateWithMetadata(locale, key, args...)
	return result, err
}

// TranslateWithMetadata translates key and reports the resolved locale and,
// for plural messages, the selected category and count.
func (t *SimpleTranslator) TranslateWithMetadata(locale, key string, args ...any) (string, map[string]any, error) {
	if t == nil || t.store == nil {
		return "", nil, ErrMissingTranslation
	}

	locale = normalizeLocale(locale)
	if locale == "" {
		locale = t.defaultLocale
	}

	for _, candidate := range t.candidates(locale) {
		msg, ok := t.store.Message(candidate, key)
		if !ok {
			continue
		}
		return t.render(candidate, msg, args)
	}

	return "", nil, ErrMissingTranslation
}

func (t *SimpleTranslator) candidates(locale string) []string {
	chain := make([]string, 0, 4)
	seen := make(map[string]struct{}, 4)

	add := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		chain = append(chain, code)
	}

	add(locale)
	if t.resolver != nil && locale != "" {
		for _, fallback := range t.resolver.Resolve(locale) {
			add(fallback)
		}
	}
	add(t.defaultLocale)

	return chain
}

func (t *SimpleTranslator) render(locale string, msg Message, args []any) (string, map[string]any, error) {
	metadata := map[string]any{metadataLocale: locale}

	sel := splitCount(args)
	category := PluralOther

	if msg.IsPlural() && sel.found {
		selected, err := t.selectCategory(locale, sel.count)
		if err != nil {
			return "", metadata, err
		}
		category = selected
		metadata[metadataPluralCategory] = category
		metadata[metadataPluralCount] = sel.count
		metadata[metadataPluralMessage] = msg.ID
	}

	if _, ok := msg.Variants[category]; !ok && category != PluralOther {
		metadata[metadataPluralMissing] = PluralMissingEvent{Requested: category, Fallback: PluralOther}
		t.logger.Debug("plural variant missing, using other",
			zap.String("locale", locale),
			zap.String("key", msg.ID),
			zap.String("category", string(category)),
		)
	}

	variant, ok := msg.Variant(category)
	if !ok {
		return "", metadata, ErrMissingTranslation
	}

	template := variant.Template
	switch {
	case sel.found && variant.UsesCount:
		template = strings.ReplaceAll(template, countPlaceholder, formatCount(sel.count))
		args = sel.rest
	case sel.explicit:
		args = sel.rest
	}

	result, err := t.formatter.Format(template, args...)
	if err != nil {
		return "", metadata, err
	}
	return result, metadata, nil
}

func (t *SimpleTranslator) selectCategory(locale string, count any) (PluralCategory, error) {
	rules, err := t.pluralRules(locale)
	if err != nil {
		return PluralOther, err
	}
	return rules.Select(count)
}

func (t *SimpleTranslator) pluralRules(locale string) (*PluralRules, error) {
	t.mu.RLock()
	rules, ok := t.rules[locale]
	t.mu.RUnlock()
	if ok {
		return rules, nil
	}

	rules, err := NewPluralRules(locale,
		WithPluralRuleTables(t.pluralTables),
		WithPluralLogger(t.logger),
	)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.rules[locale] = rules
	t.mu.Unlock()

	return rules, nil
}

type countSelection struct {
	count    any
	rest     []any
	found    bool
	explicit bool
}

// splitCount finds the plural selector. An explicit Count wins; otherwise a
// numeric first argument is used. rest holds the arguments without it.
func splitCount(args []any) countSelection {
	for i, arg := range args {
		if c, ok := arg.(Count); ok {
			rest := make([]any, 0, len(args)-1)
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+1:]...)
			return countSelection{count: c.Value, rest: rest, found: true, explicit: true}
		}
	}

	if len(args) > 0 && isNumeric(args[0]) {
		return countSelection{count: args[0], rest: args[1:], found: true}
	}

	return countSelection{rest: args}
}

func formatCount(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case decimal.Decimal:
		return v.String()
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		return v.String()
	default:
		return fmt.Sprint(value)
	}
}
