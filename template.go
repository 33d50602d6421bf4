package intl

import (
	"fmt"
	"reflect"
	"time"
)

// MissingTranslationHandler renders a replacement when a translation fails
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey is the map key or struct field holding the locale, "Locale" by default
	LocaleKey string
	// TemplateHelperKey names the translate helper, "translate" by default
	TemplateHelperKey string
	OnMissing         MissingTranslationHandler
	Registry          *HelperRegistry
}

// TemplateHelpers exposes translator and locale helpers for text/template and
// html/template. Locale aware helpers take the locale as first argument and
// dispatch through the registry so per-locale overrides apply.
func TemplateHelpers(t Translator, cfg HelperConfig) map[string]any {
	translateKey := cfg.TemplateHelperKey
	if translateKey == "" {
		translateKey = "translate"
	}

	helpers := map[string]any{
		translateKey: func(data any, key string, args ...any) string {
			locale := extractLocale(data, cfg.LocaleKey)
			if t == nil {
				return missingTranslation(cfg, locale, key, args, ErrMissingTranslation)
			}
			result, err := t.Translate(locale, key, args...)
			if err != nil {
				return missingTranslation(cfg, locale, key, args, err)
			}
			return result
		},
		"current_locale": func(data any) string {
			return extractLocale(data, cfg.LocaleKey)
		},
		"count": WithCount,
	}

	registry := cfg.Registry
	if registry == nil {
		return helpers
	}

	for name, fn := range registry.FuncMap("") {
		helpers[name] = fn
	}

	helpers[HelperPluralCategory] = func(locale string, value any) (string, error) {
		fn, err := lookupHelper[func(string, any) (string, error)](registry, HelperPluralCategory, locale)
		if err != nil {
			return "", err
		}
		return fn(locale, value)
	}
	helpers[HelperOrdinalCategory] = func(locale string, value any) (string, error) {
		fn, err := lookupHelper[func(string, any) (string, error)](registry, HelperOrdinalCategory, locale)
		if err != nil {
			return "", err
		}
		return fn(locale, value)
	}
	helpers[HelperFormatNumber] = func(locale string, value any) (string, error) {
		fn, err := lookupHelper[func(string, any) (string, error)](registry, HelperFormatNumber, locale)
		if err != nil {
			return "", err
		}
		return fn(locale, value)
	}
	helpers[HelperPluralCategories] = func(locale string) ([]string, error) {
		fn, err := lookupHelper[func(string) ([]string, error)](registry, HelperPluralCategories, locale)
		if err != nil {
			return nil, err
		}
		return fn(locale)
	}
	helpers[HelperFormatDateNumeric] = func(locale string, value time.Time, options ...string) (string, error) {
		fn, err := lookupHelper[func(string, time.Time, ...string) (string, error)](registry, HelperFormatDateNumeric, locale)
		if err != nil {
			return "", err
		}
		return fn(locale, value, options...)
	}
	helpers[HelperDateParts] = func(locale string, value time.Time) ([]DatePart, error) {
		fn, err := lookupHelper[func(string, time.Time) ([]DatePart, error)](registry, HelperDateParts, locale)
		if err != nil {
			return nil, err
		}
		return fn(locale, value)
	}

	return helpers
}

func lookupHelper[F any](registry *HelperRegistry, name, locale string) (F, error) {
	var zero F
	raw, ok := registry.Helper(name, locale)
	if !ok {
		return zero, fmt.Errorf("intl: helper %q not registered", name)
	}
	fn, ok := raw.(F)
	if !ok {
		return zero, fmt.Errorf("%w: helper %q for %q has type %T", ErrInvalidArgument, name, locale, raw)
	}
	return fn, nil
}

func missingTranslation(cfg HelperConfig, locale, key string, args []any, err error) string {
	if cfg.OnMissing != nil {
		return cfg.OnMissing(locale, key, args, err)
	}
	return key
}

// extractLocale reads the locale from a string, a map or a struct field.
func extractLocale(data any, localeKey string) string {
	if data == nil {
		return ""
	}

	if localeKey == "" {
		localeKey = "Locale"
	}

	switch d := data.(type) {
	case string:
		return d
	case map[string]any:
		if v, ok := d[localeKey]; ok {
			if str, ok := v.(string); ok {
				return str
			}
		}
		return ""
	case map[string]string:
		return d[localeKey]
	case LocaleConfig:
		return d.Language
	case *LocaleConfig:
		if d == nil {
			return ""
		}
		return d.Language
	}

	value := reflect.ValueOf(data)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ""
		}
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		field := value.FieldByName(localeKey)
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	}

	return ""
}
