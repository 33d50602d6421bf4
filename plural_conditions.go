package intl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type PluralConditionOperator string

const (
	OperatorEquals    PluralConditionOperator = "equals"
	OperatorNotEquals PluralConditionOperator = "not_equals"
	OperatorIn        PluralConditionOperator = "in"
	OperatorNotIn     PluralConditionOperator = "not_in"
	OperatorWithin    PluralConditionOperator = "within"
	OperatorNotWithin PluralConditionOperator = "not_within"
)

type PluralRange struct {
	Start float64
	End   float64
}

// PluralCondition is a single relation such as "n % 10 in 2..4".
type PluralCondition struct {
	Operand  string
	Mod      int
	Operator PluralConditionOperator
	Values   []float64
	Ranges   []PluralRange
}

// PluralRule matches when any of its groups matches; a group matches when all
// of its conditions hold.
type PluralRule struct {
	Category PluralCategory
	Groups   [][]PluralCondition
}

type PluralRuleSet struct {
	Locale      string
	DisplayName string
	Parent      string
	Type        PluralType
	Rules       []PluralRule
}

// Select returns the first category whose rule matches, or other.
func (set *PluralRuleSet) Select(ops NumericOperands) PluralCategory {
	if set == nil {
		return PluralOther
	}
	for _, rule := range set.Rules {
		if rule.Category == PluralOther {
			continue
		}
		if rule.Matches(ops) {
			return rule.Category
		}
	}
	return PluralOther
}

func (set *PluralRuleSet) Categories() []PluralCategory {
	if set == nil || len(set.Rules) == 0 {
		return []PluralCategory{PluralOther}
	}

	seen := make(map[PluralCategory]struct{}, len(set.Rules)+1)
	categories := make([]PluralCategory, 0, len(set.Rules)+1)
	for _, rule := range set.Rules {
		if rule.Category == "" {
			continue
		}
		if _, ok := seen[rule.Category]; ok {
			continue
		}
		seen[rule.Category] = struct{}{}
		categories = append(categories, rule.Category)
	}
	if _, ok := seen[PluralOther]; !ok {
		categories = append(categories, PluralOther)
	}
	sortPluralCategories(categories)
	return categories
}

func (set *PluralRuleSet) Clone() *PluralRuleSet {
	if set == nil {
		return nil
	}

	out := &PluralRuleSet{
		Locale:      set.Locale,
		DisplayName: set.DisplayName,
		Parent:      set.Parent,
		Type:        set.Type,
	}
	if len(set.Rules) > 0 {
		out.Rules = make([]PluralRule, len(set.Rules))
		for i, rule := range set.Rules {
			out.Rules[i] = PluralRule{Category: rule.Category}
			if len(rule.Groups) == 0 {
				continue
			}
			out.Rules[i].Groups = make([][]PluralCondition, len(rule.Groups))
			for j, group := range rule.Groups {
				out.Rules[i].Groups[j] = append([]PluralCondition(nil), group...)
			}
		}
	}
	return out
}

func (rule PluralRule) Matches(ops NumericOperands) bool {
	for _, group := range rule.Groups {
		if len(group) == 0 {
			continue
		}
		matched := true
		for _, cond := range group {
			if !cond.Matches(ops) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func (c PluralCondition) Matches(ops NumericOperands) bool {
	value, ok := ops.operand(c.Operand)
	if !ok {
		return false
	}
	if c.Mod > 0 {
		value = value.Mod(decimal.NewFromInt(int64(c.Mod)))
	}

	switch c.Operator {
	case OperatorEquals, OperatorIn:
		return c.contains(value, true)
	case OperatorNotEquals, OperatorNotIn:
		return !c.contains(value, true)
	case OperatorWithin:
		return c.contains(value, false)
	case OperatorNotWithin:
		return !c.contains(value, false)
	default:
		return false
	}
}

// contains checks the value list and range list. With integral set, ranges
// only match integer values, which is the difference between "in" and "within".
func (c PluralCondition) contains(value decimal.Decimal, integral bool) bool {
	for _, candidate := range c.Values {
		if value.Equal(decimal.NewFromFloat(candidate)) {
			return true
		}
	}
	for _, r := range c.Ranges {
		if integral && !value.IsInteger() {
			continue
		}
		if value.GreaterThanOrEqual(decimal.NewFromFloat(r.Start)) &&
			value.LessThanOrEqual(decimal.NewFromFloat(r.End)) {
			return true
		}
	}
	return false
}

// ParsePluralRule parses a CLDR rule expression such as
// "n % 10 = 2..4 and n % 100 != 12..14 @integer 2~4". Samples after '@' are
// ignored. An empty expression yields no groups.
func ParsePluralRule(expr string) ([][]PluralCondition, error) {
	if idx := strings.Index(expr, "@"); idx >= 0 {
		expr = expr[:idx]
	}
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	var groups [][]PluralCondition
	for _, orPart := range splitKeyword(expr, "or") {
		var group []PluralCondition
		for _, andPart := range splitKeyword(orPart, "and") {
			cond, err := parseRelation(andPart)
			if err != nil {
				return nil, err
			}
			group = append(group, cond)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func splitKeyword(expr, keyword string) []string {
	fields := strings.Fields(expr)
	var (
		parts   []string
		current []string
	)
	for _, field := range fields {
		if field == keyword {
			parts = append(parts, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, field)
	}
	return append(parts, strings.Join(current, " "))
}

func parseRelation(relation string) (PluralCondition, error) {
	normalized := strings.ReplaceAll(relation, "!=", " \x00 ")
	normalized = strings.ReplaceAll(normalized, "=", " = ")
	normalized = strings.ReplaceAll(normalized, "\x00", "!=")
	normalized = strings.ReplaceAll(normalized, "%", " % ")
	normalized = strings.ReplaceAll(normalized, ",", " , ")
	tokens := strings.Fields(normalized)

	if len(tokens) == 0 {
		return PluralCondition{}, fmt.Errorf("%w: empty plural relation", ErrInvalidArgument)
	}

	cond := PluralCondition{Operand: tokens[0]}
	if _, ok := (NumericOperands{}).operand(cond.Operand); !ok {
		return PluralCondition{}, fmt.Errorf("%w: unknown plural operand %q", ErrInvalidArgument, cond.Operand)
	}
	pos := 1

	if pos < len(tokens) && (tokens[pos] == "%" || tokens[pos] == "mod") {
		if pos+1 >= len(tokens) {
			return PluralCondition{}, fmt.Errorf("%w: missing modulus in %q", ErrInvalidArgument, relation)
		}
		mod, err := strconv.Atoi(tokens[pos+1])
		if err != nil || mod <= 0 {
			return PluralCondition{}, fmt.Errorf("%w: invalid modulus in %q", ErrInvalidArgument, relation)
		}
		cond.Mod = mod
		pos += 2
	}

	operator, consumed, err := parseRelationOperator(tokens[pos:])
	if err != nil {
		return PluralCondition{}, fmt.Errorf("%w (in %q)", err, relation)
	}
	cond.Operator = operator
	pos += consumed

	if pos >= len(tokens) {
		return PluralCondition{}, fmt.Errorf("%w: missing values in %q", ErrInvalidArgument, relation)
	}

	for _, token := range tokens[pos:] {
		if token == "," {
			continue
		}
		if start, end, ok := strings.Cut(token, ".."); ok {
			lo, errLo := strconv.ParseFloat(start, 64)
			hi, errHi := strconv.ParseFloat(end, 64)
			if errLo != nil || errHi != nil || lo > hi {
				return PluralCondition{}, fmt.Errorf("%w: invalid range %q", ErrInvalidArgument, token)
			}
			cond.Ranges = append(cond.Ranges, PluralRange{Start: lo, End: hi})
			continue
		}
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return PluralCondition{}, fmt.Errorf("%w: invalid value %q", ErrInvalidArgument, token)
		}
		cond.Values = append(cond.Values, value)
	}

	return cond, nil
}

func parseRelationOperator(tokens []string) (PluralConditionOperator, int, error) {
	if len(tokens) == 0 {
		return "", 0, fmt.Errorf("%w: missing operator", ErrInvalidArgument)
	}
	switch tokens[0] {
	case "=":
		return OperatorEquals, 1, nil
	case "!=":
		return OperatorNotEquals, 1, nil
	case "in":
		return OperatorIn, 1, nil
	case "within":
		return OperatorWithin, 1, nil
	case "is":
		if len(tokens) > 1 && tokens[1] == "not" {
			return OperatorNotEquals, 2, nil
		}
		return OperatorEquals, 1, nil
	case "not":
		if len(tokens) > 1 {
			switch tokens[1] {
			case "in":
				return OperatorNotIn, 2, nil
			case "within":
				return OperatorNotWithin, 2, nil
			}
		}
	}
	return "", 0, fmt.Errorf("%w: unknown operator %q", ErrInvalidArgument, tokens[0])
}

func parseConditionOperator(raw string) (PluralConditionOperator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(OperatorEquals), "=", "is":
		return OperatorEquals, nil
	case string(OperatorNotEquals), "!=", "is_not":
		return OperatorNotEquals, nil
	case string(OperatorIn):
		return OperatorIn, nil
	case string(OperatorNotIn):
		return OperatorNotIn, nil
	case string(OperatorWithin):
		return OperatorWithin, nil
	case string(OperatorNotWithin):
		return OperatorNotWithin, nil
	default:
		return "", fmt.Errorf("unknown condition operator %q", raw)
	}
}

func parsePluralCategory(raw string) (PluralCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zero":
		return PluralZero, nil
	case "one":
		return PluralOne, nil
	case "two":
		return PluralTwo, nil
	case "few":
		return PluralFew, nil
	case "many":
		return PluralMany, nil
	case "other":
		return PluralOther, nil
	default:
		return "", fmt.Errorf("unknown plural category %q", raw)
	}
}

func sortPluralCategories(categories []PluralCategory) {
	sort.SliceStable(categories, func(i, j int) bool {
		return pluralCategoryOrder(categories[i]) < pluralCategoryOrder(categories[j])
	})
}
