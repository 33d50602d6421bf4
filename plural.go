package intl

import (
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

const (
	defaultMinimumFractionDigits = 0
	defaultMaximumFractionDigits = 3
	maxFractionDigits            = 20

	// tableOperandCeiling keeps operands handed to x/text below the range it
	// accepts while preserving residues modulo 10,000,000.
	tableOperandCeiling = 10_000_000
)

type pluralRulesConfig struct {
	pluralType  PluralType
	minFraction int
	maxFraction int
	tables      PluralRuleTables
	logger      *zap.Logger
}

// PluralRulesOption configures NewPluralRules
type PluralRulesOption func(*pluralRulesConfig)

func WithPluralType(t PluralType) PluralRulesOption {
	return func(cfg *pluralRulesConfig) {
		if t != "" {
			cfg.pluralType = t
		}
	}
}

func WithFractionDigits(minimum, maximum int) PluralRulesOption {
	return func(cfg *pluralRulesConfig) {
		cfg.minFraction = minimum
		cfg.maxFraction = maximum
	}
}

// WithPluralRuleTables installs locale rule sets that take precedence over
// the built-in CLDR tables.
func WithPluralRuleTables(tables PluralRuleTables) PluralRulesOption {
	return func(cfg *pluralRulesConfig) {
		cfg.tables = tables
	}
}

func WithPluralLogger(logger *zap.Logger) PluralRulesOption {
	return func(cfg *pluralRulesConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// PluralRules selects plural categories for a single locale. It is immutable
// and safe for concurrent use.
type PluralRules struct {
	locale      string
	tag         language.Tag
	pluralType  PluralType
	minFraction int
	maxFraction int
	ruleSet     *PluralRuleSet
	custom      bool
	table       *plural.Rules

	categoriesOnce sync.Once
	categories     []PluralCategory
}

// PluralRulesOptions reports the settings a PluralRules instance resolved to.
type PluralRulesOptions struct {
	Locale                string
	Type                  PluralType
	MinimumFractionDigits int
	MaximumFractionDigits int
	PluralCategories      []PluralCategory
	CustomRules           bool
}

// NewPluralRules resolves locale and builds a selector. An empty locale
// resolves to English.
func NewPluralRules(locale string, opts ...PluralRulesOption) (*PluralRules, error) {
	cfg := pluralRulesConfig{
		pluralType:  PluralCardinal,
		minFraction: defaultMinimumFractionDigits,
		maxFraction: defaultMaximumFractionDigits,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.minFraction < 0 || cfg.maxFraction > maxFractionDigits || cfg.minFraction > cfg.maxFraction {
		return nil, fmt.Errorf("%w: fraction digits out of range (min %d, max %d)", ErrInvalidArgument, cfg.minFraction, cfg.maxFraction)
	}

	tag, err := parseLocaleTag(locale)
	if err != nil {
		return nil, err
	}

	rules := &PluralRules{
		locale:      tag.String(),
		tag:         tag,
		pluralType:  cfg.pluralType,
		minFraction: cfg.minFraction,
		maxFraction: cfg.maxFraction,
	}

	switch cfg.pluralType {
	case PluralCardinal:
		rules.table = plural.Cardinal
	case PluralOrdinal:
		rules.table = plural.Ordinal
	default:
		return nil, fmt.Errorf("%w: unknown plural type %q", ErrInvalidArgument, cfg.pluralType)
	}

	if set, matched := cfg.tables.Lookup(cfg.pluralType, rules.locale); set != nil {
		rules.ruleSet = set
		rules.custom = true
		cfg.logger.Debug("using custom plural rules",
			zap.String("locale", rules.locale),
			zap.String("matched", matched),
			zap.String("type", string(cfg.pluralType)),
		)
		return rules, nil
	}

	builtin, err := loadBuiltinPluralRules()
	if err != nil {
		return nil, err
	}
	if set, _ := builtin.Lookup(cfg.pluralType, rules.locale); set != nil {
		rules.ruleSet = set
	} else {
		cfg.logger.Debug("no CLDR plural rules for locale, using x/text tables",
			zap.String("locale", rules.locale),
			zap.String("type", string(cfg.pluralType)),
		)
	}

	return rules, nil
}

// ResolvePlural selects the cardinal category of value for locale.
func ResolvePlural(locale string, value any) (PluralCategory, error) {
	rules, err := NewPluralRules(locale)
	if err != nil {
		return PluralOther, err
	}
	return rules.Select(value)
}

func (p *PluralRules) Locale() string {
	return p.locale
}

// Select returns the plural category for value. Non-finite values select
// other; values that are not numbers return ErrInvalidArgument.
func (p *PluralRules) Select(value any) (PluralCategory, error) {
	ops, finite, err := p.Operands(value)
	if err != nil {
		return PluralOther, err
	}
	if !finite {
		return PluralOther, nil
	}
	return p.SelectOperands(ops), nil
}

// SelectOperands selects the category for operands that are already decomposed.
func (p *PluralRules) SelectOperands(ops NumericOperands) PluralCategory {
	if p.ruleSet != nil {
		return p.ruleSet.Select(ops)
	}
	form := p.table.MatchPlural(p.tag,
		tableOperand(ops.IntegerDigits),
		ops.NumberOfFractionDigits,
		ops.NumberOfFractionDigitsWithoutTrailing,
		tableOperand(ops.FractionDigits),
		tableOperand(ops.FractionDigitsWithoutTrailing),
	)
	return categoryFromForm(form)
}

// Operands formats value with the configured fraction digits and decomposes
// it. The boolean is false for NaN and infinities.
func (p *PluralRules) Operands(value any) (NumericOperands, bool, error) {
	input, err := parseNumericInput(value)
	if err != nil {
		return NumericOperands{}, false, err
	}
	if !input.finite {
		return NumericOperands{}, false, nil
	}

	ops, err := GetOperands(p.format(input))
	if err != nil {
		return NumericOperands{}, false, err
	}
	return ops, true, nil
}

// format renders the value the way it would be displayed. Strings keep their
// visible digits unless they fall outside the fraction digit bounds.
func (p *PluralRules) format(input numericInput) string {
	if input.literal != "" {
		digits := fractionDigitCount(input.literal)
		switch {
		case digits > p.maxFraction:
			return input.value.StringFixed(int32(p.maxFraction))
		case digits < p.minFraction:
			return input.value.StringFixed(int32(p.minFraction))
		default:
			return input.literal
		}
	}

	rounded := input.value.Round(int32(p.maxFraction))
	formatted := rounded.String()
	if fractionDigitCount(formatted) < p.minFraction {
		formatted = rounded.StringFixed(int32(p.minFraction))
	}
	return formatted
}

// Categories lists the categories this locale can produce, in canonical order.
func (p *PluralRules) Categories() []PluralCategory {
	p.categoriesOnce.Do(func() {
		if p.ruleSet != nil {
			p.categories = p.ruleSet.Categories()
			return
		}
		p.categories = p.sampleCategories()
	})
	return append([]PluralCategory(nil), p.categories...)
}

func (p *PluralRules) ResolvedOptions() PluralRulesOptions {
	return PluralRulesOptions{
		Locale:                p.locale,
		Type:                  p.pluralType,
		MinimumFractionDigits: p.minFraction,
		MaximumFractionDigits: p.maxFraction,
		PluralCategories:      p.Categories(),
		CustomRules:           p.custom,
	}
}

// sampleCategories runs the x/text tables over a spread of sample values,
// since x/text does not expose the category list of a locale.
func (p *PluralRules) sampleCategories() []PluralCategory {
	seen := make(map[PluralCategory]struct{}, len(pluralCategories))
	record := func(sample string) {
		ops, err := GetOperands(sample)
		if err != nil {
			return
		}
		seen[p.SelectOperands(ops)] = struct{}{}
	}

	for i := 0; i <= 200; i++ {
		record(strconv.Itoa(i))
	}
	for _, sample := range []string{"1000", "10000", "100000", "1000000", "1000001"} {
		record(sample)
	}
	for _, integer := range []string{"0", "1", "2", "3", "5", "11", "21", "101"} {
		for _, fraction := range []string{"0", "1", "2", "5", "00", "01", "10", "25"} {
			record(integer + "." + fraction)
		}
	}

	categories := make([]PluralCategory, 0, len(seen))
	for _, category := range pluralCategories {
		if _, ok := seen[category]; ok {
			categories = append(categories, category)
		}
	}
	return categories
}

func categoryFromForm(form plural.Form) PluralCategory {
	switch form {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

func tableOperand(value int64) int {
	if value < tableOperandCeiling {
		return int(value)
	}
	return int(value%tableOperandCeiling) + tableOperandCeiling
}
