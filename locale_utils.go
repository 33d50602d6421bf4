package intl

import (
	"fmt"
	"sort"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

const defaultLocale = "en"

// parseLocaleTag parses a BCP 47 tag, accepting POSIX style underscores.
// Empty input resolves to the default locale.
func parseLocaleTag(locale string) (language.Tag, error) {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		normalized = defaultLocale
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return language.Und, fmt.Errorf("%w %q: %w", ErrInvalidLocale, locale, err)
	}
	return tag, nil
}

// SystemLocale returns the host locale as a BCP 47 tag, as reported by the
// operating system (LANG/LC_* on Unix, the user default locale elsewhere).
func SystemLocale() (string, error) {
	raw, err := golocale.GetLocale()
	if err != nil {
		return "", fmt.Errorf("intl: detect system locale: %w", err)
	}
	return normalizeSystemLocale(raw), nil
}

// normalizeSystemLocale strips POSIX codeset and modifier suffixes such as
// "de_DE.UTF-8@euro".
func normalizeSystemLocale(raw string) string {
	value := strings.TrimSpace(raw)
	if idx := strings.IndexAny(value, ".@"); idx >= 0 {
		value = value[:idx]
	}
	if value == "C" || value == "POSIX" {
		return ""
	}
	return normalizeLocale(value)
}

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

// localeParentChain lists parents from closest to root, e.g. es-MX -> es-419, es.
func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := make(map[string]struct{}, 4)

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			break
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	if base := baseLanguage(locale); base != "" && base != locale {
		if _, exists := seen[base]; !exists {
			chain = append(chain, base)
		}
	}

	return chain
}

// baseLanguage returns the language subtag written in locale. Guessed
// languages ("und-BG" would guess bg) are not reported.
func baseLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence != language.Exact {
		return ""
	}
	value := base.String()
	if value == "und" {
		return ""
	}
	return value
}

// normalizeLocale normalizes a single locale identifier by replacing
// underscores with hyphens and trimming whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

func containsLocale(locales []string, target string) bool {
	for _, locale := range locales {
		if locale == target {
			return true
		}
	}
	return false
}
