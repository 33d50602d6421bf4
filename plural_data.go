package intl

import (
	"embed"
	"fmt"
	"sync"
)

// CLDR 44 supplemental plural rules, cardinal and ordinal.
//
//go:embed cldr/plurals.json cldr/ordinals.json
var cldrPluralFiles embed.FS

var (
	builtinPluralRulesOnce sync.Once
	builtinPluralRules     PluralRuleTables
	builtinPluralRulesErr  error
)

// BuiltinPluralRuleTables returns a copy of the CLDR rule sets shipped with
// the package. Locales missing from them fall back to golang.org/x/text.
func BuiltinPluralRuleTables() (PluralRuleTables, error) {
	tables, err := loadBuiltinPluralRules()
	if err != nil {
		return nil, err
	}
	out := make(PluralRuleTables, len(tables))
	out.Merge(tables)
	return out, nil
}

func loadBuiltinPluralRules() (PluralRuleTables, error) {
	builtinPluralRulesOnce.Do(func() {
		tables := make(PluralRuleTables)
		for _, name := range []string{"cldr/plurals.json", "cldr/ordinals.json"} {
			data, err := cldrPluralFiles.ReadFile(name)
			if err != nil {
				builtinPluralRulesErr = fmt.Errorf("intl: read %s: %w", name, err)
				return
			}
			parsed, err := decodePluralRules(name, data)
			if err != nil {
				builtinPluralRulesErr = fmt.Errorf("intl: decode %s: %w", name, err)
				return
			}
			tables.Merge(parsed)
		}
		builtinPluralRules = tables
	})
	return builtinPluralRules, builtinPluralRulesErr
}
