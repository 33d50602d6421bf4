package intl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PluralRuleTables indexes rule sets by plural type and locale.
type PluralRuleTables map[PluralType]map[string]*PluralRuleSet

// Add registers set under its type and locale, replacing any previous entry.
func (t PluralRuleTables) Add(set *PluralRuleSet) {
	if t == nil || set == nil || set.Locale == "" {
		return
	}
	typ := set.Type
	if typ == "" {
		typ = PluralCardinal
	}
	if t[typ] == nil {
		t[typ] = make(map[string]*PluralRuleSet)
	}
	t[typ][normalizeLocale(set.Locale)] = set
}

// Merge copies every rule set of src into t.
func (t PluralRuleTables) Merge(src PluralRuleTables) {
	for _, sets := range src {
		for _, set := range sets {
			t.Add(set.Clone())
		}
	}
}

// Lookup walks locale and its CLDR parent chain and returns the first rule
// set found together with the locale that matched.
func (t PluralRuleTables) Lookup(typ PluralType, locale string) (*PluralRuleSet, string) {
	sets := t[typ]
	if len(sets) == 0 {
		return nil, ""
	}

	seen := make(map[string]struct{}, 4)
	candidates := []string{normalizeLocale(locale)}
	for len(candidates) > 0 {
		candidate := candidates[0]
		candidates = candidates[1:]
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}

		if set, ok := sets[candidate]; ok {
			return set, candidate
		}
		candidates = append(candidates, localeParentChain(candidate)...)
	}
	return nil, ""
}

// Locales lists the locales with rules of the given type.
func (t PluralRuleTables) Locales(typ PluralType) []string {
	locales := make([]string, 0, len(t[typ]))
	for locale := range t[typ] {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// LoadPluralRuleFiles reads rule files in the structured format
//
//	{"locales": {"en": {"cardinal": {"one": [[{"operand": "i", "operator": "equals", "values": [1]}]]}}}}
//
// where a category may also hold a CLDR expression string, or in the CLDR
// JSON supplemental format ("plurals-type-cardinal"). YAML files are accepted
// for both layouts.
func LoadPluralRuleFiles(paths ...string) (PluralRuleTables, error) {
	tables := make(PluralRuleTables)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("intl: read plural rules %s: %w", path, err)
		}
		parsed, err := decodePluralRules(path, data)
		if err != nil {
			return nil, fmt.Errorf("intl: decode plural rules %s: %w", path, err)
		}
		tables.Merge(parsed)
	}
	return tables, nil
}

type rawPluralRulesFile struct {
	Locales      map[string]rawLocaleRules `json:"locales"`
	Supplemental *rawCLDRSupplemental      `json:"supplemental"`
}

type rawCLDRSupplemental struct {
	Cardinal map[string]map[string]string `json:"plurals-type-cardinal"`
	Ordinal  map[string]map[string]string `json:"plurals-type-ordinal"`
}

type rawLocaleRules struct {
	Name     string                     `json:"name"`
	Parent   string                     `json:"parent"`
	Cardinal map[string]json.RawMessage `json:"cardinal"`
	Ordinal  map[string]json.RawMessage `json:"ordinal"`
}

type rawConditionGroup []rawCondition

type rawCondition struct {
	Operand  string     `json:"operand"`
	Mod      *int       `json:"mod,omitempty"`
	Operator string     `json:"operator"`
	Values   []float64  `json:"values,omitempty"`
	Ranges   []rawRange `json:"ranges,omitempty"`
}

type rawRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func decodePluralRules(path string, data []byte) (PluralRuleTables, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	wrapper := rawPluralRulesFile{}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}

	if wrapper.Supplemental != nil {
		return buildCLDRTables(wrapper.Supplemental)
	}

	if len(wrapper.Locales) == 0 {
		var direct map[string]rawLocaleRules
		if err := json.Unmarshal(data, &direct); err != nil {
			return nil, err
		}
		wrapper.Locales = direct
	}

	if len(wrapper.Locales) == 0 {
		return nil, fmt.Errorf("plural rule file %s has no locales", path)
	}

	tables := make(PluralRuleTables)
	for locale, raw := range wrapper.Locales {
		if len(raw.Cardinal) == 0 && len(raw.Ordinal) == 0 {
			return nil, fmt.Errorf("%s: missing cardinal or ordinal rules", locale)
		}
		for typ, categories := range map[PluralType]map[string]json.RawMessage{
			PluralCardinal: raw.Cardinal,
			PluralOrdinal:  raw.Ordinal,
		} {
			if len(categories) == 0 {
				continue
			}
			set, err := buildRuleSet(locale, typ, categories)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", locale, err)
			}
			set.DisplayName = raw.Name
			set.Parent = normalizeLocale(raw.Parent)
			tables.Add(set)
		}
	}
	return tables, nil
}

func buildRuleSet(locale string, typ PluralType, raw map[string]json.RawMessage) (*PluralRuleSet, error) {
	entries := make([]PluralRule, 0, len(raw)+1)
	for category, payload := range raw {
		cat, err := parsePluralCategory(category)
		if err != nil {
			return nil, err
		}

		groups, err := decodeRuleGroups(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", category, err)
		}
		entries = append(entries, PluralRule{Category: cat, Groups: groups})
	}
	return newRuleSet(locale, typ, entries), nil
}

func decodeRuleGroups(payload json.RawMessage) ([][]PluralCondition, error) {
	var expr string
	if err := json.Unmarshal(payload, &expr); err == nil {
		return ParsePluralRule(expr)
	}

	var rawGroups []rawConditionGroup
	if err := json.Unmarshal(payload, &rawGroups); err != nil {
		return nil, fmt.Errorf("unsupported rule payload: %w", err)
	}

	groups := make([][]PluralCondition, 0, len(rawGroups))
	for _, rawGroup := range rawGroups {
		if len(rawGroup) == 0 {
			continue
		}
		conditions := make([]PluralCondition, 0, len(rawGroup))
		for _, rc := range rawGroup {
			operator, err := parseConditionOperator(rc.Operator)
			if err != nil {
				return nil, err
			}
			if _, ok := (NumericOperands{}).operand(rc.Operand); !ok {
				return nil, fmt.Errorf("unknown plural operand %q", rc.Operand)
			}
			cond := PluralCondition{
				Operand:  rc.Operand,
				Operator: operator,
			}
			if rc.Mod != nil {
				cond.Mod = *rc.Mod
			}
			if len(rc.Values) > 0 {
				cond.Values = append([]float64(nil), rc.Values...)
			}
			for _, r := range rc.Ranges {
				cond.Ranges = append(cond.Ranges, PluralRange{Start: r.Start, End: r.End})
			}
			conditions = append(conditions, cond)
		}
		groups = append(groups, conditions)
	}
	return groups, nil
}

func buildCLDRTables(raw *rawCLDRSupplemental) (PluralRuleTables, error) {
	tables := make(PluralRuleTables)
	for typ, locales := range map[PluralType]map[string]map[string]string{
		PluralCardinal: raw.Cardinal,
		PluralOrdinal:  raw.Ordinal,
	} {
		for locale, rules := range locales {
			entries := make([]PluralRule, 0, len(rules))
			for key, expr := range rules {
				cat, err := parsePluralCategory(strings.TrimPrefix(key, "pluralRule-count-"))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", locale, err)
				}
				groups, err := ParsePluralRule(expr)
				if err != nil {
					return nil, fmt.Errorf("%s/%s: %w", locale, cat, err)
				}
				entries = append(entries, PluralRule{Category: cat, Groups: groups})
			}
			tables.Add(newRuleSet(locale, typ, entries))
		}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("CLDR plural data has no locales")
	}
	return tables, nil
}

func newRuleSet(locale string, typ PluralType, entries []PluralRule) *PluralRuleSet {
	sort.SliceStable(entries, func(i, j int) bool {
		return pluralCategoryOrder(entries[i].Category) < pluralCategoryOrder(entries[j].Category)
	})

	hasOther := false
	for _, entry := range entries {
		if entry.Category == PluralOther {
			hasOther = true
			break
		}
	}
	if !hasOther {
		entries = append(entries, PluralRule{Category: PluralOther})
	}

	return &PluralRuleSet{
		Locale: normalizeLocale(locale),
		Type:   typ,
		Rules:  entries,
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse error: %w", err)
	}
	return json.Marshal(raw)
}
