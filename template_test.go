package intl

import (
	"bytes"
	"errors"
	"testing"
	"text/template"
	"time"
)

func TestTemplateHelpersTranslateInferredLocale(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": MessageCatalog("en", map[string]string{
			"home.title": "Welcome",
		}),
	})

	translator, err := NewSimpleTranslator(store, WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("NewSimpleTranslator: %v", err)
	}

	helpers := TemplateHelpers(translator, HelperConfig{LocaleKey: "current_locale"})

	translate, ok := helpers["translate"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("translate helper signature mismatch: %T", helpers["translate"])
	}

	ctx := map[string]any{"current_locale": "en"}

	if got := translate(ctx, "home.title"); got != "Welcome" {
		t.Fatalf("translate inferred locale = %q", got)
	}

	if got := translate("en", "home.title"); got != "Welcome" {
		t.Fatalf("translate explicit locale = %q", got)
	}
}

func TestTemplateHelpersMissingTranslationHandler(t *testing.T) {
	translator, err := NewSimpleTranslator(NewStaticStore(nil), WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("NewSimpleTranslator: %v", err)
	}

	var called bool
	onMissing := func(locale, key string, args []any, err error) string {
		called = true
		if locale != "en" {
			t.Fatalf("expected locale en, got %q", locale)
		}
		if !errors.Is(err, ErrMissingTranslation) {
			t.Fatalf("unexpected error: %v", err)
		}
		return "missing"
	}

	helpers := TemplateHelpers(translator, HelperConfig{
		LocaleKey: "locale",
		OnMissing: onMissing,
	})

	translate := helpers["translate"].(func(any, string, ...any) string)

	ctx := map[string]any{"locale": "en"}

	if got := translate(ctx, "unknown"); got != "missing" {
		t.Fatalf("translate missing = %q", got)
	}

	if !called {
		t.Fatal("expected missing handler invocation")
	}
}

func TestTemplateHelpersCurrentLocaleHelper(t *testing.T) {
	helpers := TemplateHelpers(nil, HelperConfig{LocaleKey: "locale"})

	currentLocale := helpers["current_locale"].(func(any) string)

	ctx := map[string]string{"locale": "es"}
	if got := currentLocale(ctx); got != "es" {
		t.Fatalf("current_locale helper = %q", got)
	}

	if got := currentLocale("fr"); got != "fr" {
		t.Fatalf("current_locale fallback string = %q", got)
	}
}

func TestTemplateHelpersCustomTranslateKey(t *testing.T) {
	helpers := TemplateHelpers(nil, HelperConfig{TemplateHelperKey: "t"})

	helper, ok := helpers["t"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("custom translate helper missing: %T", helpers["t"])
	}

	if got := helper("", "foo"); got != "foo" {
		t.Fatalf("custom translate fallback = %q", got)
	}

	if _, ok := helpers[HelperPluralCategory]; ok {
		t.Fatal("locale helpers require a registry")
	}
}

func TestTemplateHelpersUseRegistryOverrides(t *testing.T) {
	registry, err := NewHelperRegistry(
		WithHelperLocales("en", "es-MX"),
		WithHelperResolver(NewStaticFallbackResolver()),
	)
	if err != nil {
		t.Fatalf("NewHelperRegistry: %v", err)
	}

	registry.RegisterLocale("es", HelperPluralCategory, func(_ string, _ any) (string, error) {
		return "es-override", nil
	})

	helpers := TemplateHelpers(nil, HelperConfig{Registry: registry})

	plural, ok := helpers[HelperPluralCategory].(func(string, any) (string, error))
	if !ok {
		t.Fatalf("plural helper signature mismatch: %T", helpers[HelperPluralCategory])
	}

	if got, err := plural("es-MX", 1); err != nil || got != "es-override" {
		t.Fatalf("plural(es-MX) = %q,%v", got, err)
	}

	if got, err := plural("en", 1); err != nil || got != "one" {
		t.Fatalf("plural(en) = %q,%v", got, err)
	}
}

func TestTemplateHelpersRegistryTypeMismatch(t *testing.T) {
	registry, err := NewHelperRegistry()
	if err != nil {
		t.Fatalf("NewHelperRegistry: %v", err)
	}
	registry.RegisterLocale("de", HelperFormatNumber, func(value float64) string { return "x" })

	helpers := TemplateHelpers(nil, HelperConfig{Registry: registry})
	formatNumber := helpers[HelperFormatNumber].(func(string, any) (string, error))

	if _, err := formatNumber("de", 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if got, err := formatNumber("en", 1234); err != nil || got != "1,234" {
		t.Fatalf("format_number(en) = %q,%v", got, err)
	}
}

func TestTemplateHelpersRender(t *testing.T) {
	cfg, err := NewConfig(
		WithLocales("en", "ru"),
		WithDefaultLocale("en"),
		WithLoader(LoaderFunc(func() (Translations, error) {
			return Translations{
				"en": pluralCatalog("en", map[string]map[PluralCategory]string{
					"cart.items": {PluralOne: "{count} item", PluralOther: "{count} items"},
				}),
				"ru": pluralCatalog("ru", map[string]map[PluralCategory]string{
					"cart.items": {
						PluralOne:   "{count} товар",
						PluralFew:   "{count} товара",
						PluralMany:  "{count} товаров",
						PluralOther: "{count} товара",
					},
				}),
			}, nil
		})),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	translator, err := cfg.BuildTranslator()
	if err != nil {
		t.Fatalf("BuildTranslator: %v", err)
	}

	tmpl := template.Must(template.New("page").Funcs(cfg.TemplateHelpers(translator, HelperConfig{})).Parse(
		`{{translate . "cart.items" (count .Items)}} | {{plural .Locale .Items}} | {{ordinal .Locale .Rank}} | ` +
			`{{format_date_numeric .Locale .Date "YMD" "UTC"}} | {{range plural_categories .Locale}}{{.}} {{end}}| ` +
			`{{range date_parts .Locale .Date}}{{.Type}}{{end}} | {{current_locale .}}`,
	))

	date := time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)

	render := func(locale string, items, rank int) string {
		var buf bytes.Buffer
		data := struct {
			Locale string
			Items  int
			Rank   int
			Date   time.Time
		}{locale, items, rank, date}
		if err := tmpl.Execute(&buf, data); err != nil {
			t.Fatalf("Execute(%s): %v", locale, err)
		}
		return buf.String()
	}

	if got, want := render("en", 1, 2), "1 item | one | two | 2024/1/5 | one other | monthliteraldayliteralyear | en"; got != want {
		t.Fatalf("render en = %q\nwant %q", got, want)
	}
	if got, want := render("ru", 5, 3), "5 товаров | many | other | 2024.01.05 | one few many other | dayliteralmonthliteralyear | ru"; got != want {
		t.Fatalf("render ru = %q\nwant %q", got, want)
	}
}

func TestExtractLocale(t *testing.T) {
	type page struct {
		Locale string
		Lang   string
	}
	type pageWithNumber struct {
		Locale int
	}

	tests := []struct {
		name string
		data any
		key  string
		want string
	}{
		{"nil", nil, "", ""},
		{"string", "de", "", "de"},
		{"map any", map[string]any{"Locale": "fr"}, "", "fr"},
		{"map any non string", map[string]any{"Locale": 1}, "", ""},
		{"map string custom key", map[string]string{"lang": "it"}, "lang", "it"},
		{"locale config", LocaleConfig{Language: "ja"}, "", "ja"},
		{"locale config pointer", &LocaleConfig{Language: "ko"}, "", "ko"},
		{"nil locale config", (*LocaleConfig)(nil), "", ""},
		{"struct", page{Locale: "pt"}, "", "pt"},
		{"struct pointer custom key", &page{Lang: "sv"}, "Lang", "sv"},
		{"struct non string field", pageWithNumber{Locale: 3}, "", ""},
		{"unsupported", 42, "", ""},
	}

	for _, tc := range tests {
		if got := extractLocale(tc.data, tc.key); got != tc.want {
			t.Fatalf("%s: extractLocale = %q want %q", tc.name, got, tc.want)
		}
	}
}
