package intl

import (
	"sort"
	"strings"
)

// PluralCatalogIssue describes a plural message whose variants do not line up
// with the categories its locale selects. Missing categories fall back to the
// other form at runtime; unreachable ones are never used.
type PluralCatalogIssue struct {
	Locale      string
	Key         string
	Missing     []PluralCategory
	Unreachable []PluralCategory
}

// CheckPluralCatalogs compares every plural message with the cardinal
// categories of the locale that owns it. tables take precedence over the
// built-in CLDR rules. Locales that cannot be parsed are skipped. Issues are
// sorted by locale and key.
func CheckPluralCatalogs(translations Translations, tables PluralRuleTables) []PluralCatalogIssue {
	locales := make([]string, 0, len(translations))
	for locale, catalog := range translations {
		if catalog != nil {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)

	var issues []PluralCatalogIssue
	for _, locale := range locales {
		catalog := translations[locale]
		rules, err := NewPluralRules(locale, WithPluralRuleTables(tables))
		if err != nil {
			continue
		}
		selected := rules.Categories()

		keys := make([]string, 0, len(catalog.Messages))
		for key, message := range catalog.Messages {
			if message.IsPlural() {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)

		for _, key := range keys {
			variants := catalog.Messages[key].Variants
			issue := PluralCatalogIssue{Locale: normalizeLocale(locale), Key: key}
			for _, category := range selected {
				if _, ok := variants[category]; !ok {
					issue.Missing = append(issue.Missing, category)
				}
			}
			for _, category := range pluralCategories {
				if _, ok := variants[category]; ok && !containsCategory(selected, category) {
					issue.Unreachable = append(issue.Unreachable, category)
				}
			}
			if len(issue.Missing) > 0 || len(issue.Unreachable) > 0 {
				issues = append(issues, issue)
			}
		}
	}
	return issues
}

func containsCategory(categories []PluralCategory, target PluralCategory) bool {
	for _, category := range categories {
		if category == target {
			return true
		}
	}
	return false
}

func joinCategories(categories []PluralCategory) string {
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = string(category)
	}
	return strings.Join(names, ", ")
}
