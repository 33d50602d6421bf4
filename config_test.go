package intl

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(
		WithLocales("es", "en", "en"),
		WithDefaultLocale("es"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLocale != "es" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}

	expected := []string{"en", "es"}
	if len(cfg.Locales) != len(expected) {
		t.Fatalf("Locales length = %d, want %d", len(cfg.Locales), len(expected))
	}
	for i, locale := range expected {
		if cfg.Locales[i] != locale {
			t.Fatalf("Locales[%d] = %q, want %q", i, cfg.Locales[i], locale)
		}
	}

	if cfg.Store == nil {
		t.Fatal("expected default store")
	}

	if cfg.Formatter == nil {
		t.Fatal("expected default formatter")
	}

	if cfg.Resolver == nil {
		t.Fatal("expected fallback resolver")
	}

	if cfg.Logger == nil {
		t.Fatal("expected nop logger")
	}

	if cfg.DateFormatter() == nil || cfg.HelperRegistry() == nil {
		t.Fatal("expected date formatter and helper registry")
	}
}

func TestNewConfigDefaultLocaleFromLocales(t *testing.T) {
	cfg, err := NewConfig(WithLocales("ru", "bg"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.DefaultLocale != "bg" {
		t.Fatalf("DefaultLocale = %q, want first sorted locale", cfg.DefaultLocale)
	}

	empty, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if empty.DefaultLocale != "en" {
		t.Fatalf("DefaultLocale = %q, want en", empty.DefaultLocale)
	}
}

func TestNewConfigWithLoader(t *testing.T) {
	loader := LoaderFunc(func() (Translations, error) {
		return Translations{
			"en": MessageCatalog("en", map[string]string{"home.title": "Welcome"}),
		}, nil
	})

	cfg, err := NewConfig(WithLoader(loader))
	if err != nil {
		t.Fatalf("NewConfig with loader: %v", err)
	}

	msg, ok := cfg.Store.Get("en", "home.title")
	if !ok || msg != "Welcome" {
		t.Fatalf("store lookup returned %q,%v", msg, ok)
	}
}

func TestNewConfigWarnsOnMissingPluralVariants(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	loader := NewFileLoader(
		filepath.Join("testdata", "messages_en.json"),
		filepath.Join("testdata", "messages_ru.yaml"),
	)

	if _, err := NewConfig(WithLoader(loader), WithLogger(zap.New(core))); err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	entries := logs.FilterMessage("plural message lacks categories, other form will be used").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["locale"] != "ru" || fields["key"] != "cart.discount" || fields["missing"] != "few, many" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestNewConfigRejectsUnreachableVariants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	writeFile(t, path, `{"en": {"cart.items": {"one": "a", "few": "b", "other": "c"}}}`)

	if _, err := NewConfig(WithLoader(NewFileLoader(path))); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	tables := PluralRuleTables{}
	tables.Add(&PluralRuleSet{Locale: "en", Rules: []PluralRule{
		{Category: PluralOne, Groups: mustRule(t, "n = 1")},
		{Category: PluralFew, Groups: mustRule(t, "n = 2..4")},
	}})

	if _, err := NewConfig(WithLoader(NewFileLoader(path)), WithCustomPluralRules(tables)); err != nil {
		t.Fatalf("NewConfig with custom rules: %v", err)
	}
}

func mustRule(t *testing.T, source string) [][]PluralCondition {
	t.Helper()
	groups, err := ParsePluralRule(source)
	if err != nil {
		t.Fatalf("ParsePluralRule(%q): %v", source, err)
	}
	return groups
}

func TestNewConfigLoaderError(t *testing.T) {
	loader := LoaderFunc(func() (Translations, error) {
		return nil, errors.New("boom")
	})

	if _, err := NewConfig(WithLoader(loader)); err == nil {
		t.Fatal("expected loader error")
	}
}

func TestConfigWithFallbackOption(t *testing.T) {
	cfg, err := NewConfig(
		WithFallback("es", "en", "fr", "en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	chain := cfg.Resolver.Resolve("es")

	expected := []string{"en", "fr"}
	if len(chain) != len(expected) {
		t.Fatalf("fallback chain length = %d want %d", len(chain), len(expected))
	}

	for i, locale := range expected {
		if chain[i] != locale {
			t.Fatalf("fallback[%d] = %q want %q", i, chain[i], locale)
		}
	}
}

func TestConfigSeedsParentFallbacks(t *testing.T) {
	cfg, err := NewConfig(
		WithLocales("es-MX", "pt-BR"),
		WithFallback("pt-BR", "en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if chain := cfg.Resolver.Resolve("es-MX"); len(chain) != 2 || chain[0] != "es-419" || chain[1] != "es" {
		t.Fatalf("es-MX chain = %v", chain)
	}
	if chain := cfg.Resolver.Resolve("pt-BR"); len(chain) != 1 || chain[0] != "en" {
		t.Fatalf("explicit chain replaced: %v", chain)
	}
}

func TestBuildTranslatorUsesFallback(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": MessageCatalog("en", map[string]string{"home.title": "Welcome"}),
	})

	cfg, err := NewConfig(
		WithStore(store),
		WithDefaultLocale("en"),
		WithFallback("es", "en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	translator, err := cfg.BuildTranslator()
	if err != nil {
		t.Fatalf("BuildTranslator: %v", err)
	}

	got, err := translator.Translate("es", "home.title")
	if err != nil {
		t.Fatalf("Translate with fallback: %v", err)
	}

	if got != "Welcome" {
		t.Fatalf("Translate() = %q want Welcome", got)
	}
}

func TestConfigBuildTranslatorNil(t *testing.T) {
	var cfg *Config
	translator, err := cfg.BuildTranslator()
	if !errors.Is(err, ErrInvalidArgument) || translator != nil {
		t.Fatalf("expected ErrInvalidArgument, got (%v, %v)", err, translator)
	}
}

func TestBuildTranslatorAppliesHooks(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": MessageCatalog("en", map[string]string{"home.title": "Welcome"}),
	})

	var before, after int
	hook := TranslationHookFuncs{
		Before: func(ctx *TranslatorHookContext) { before++ },
		After: func(ctx *TranslatorHookContext) {
			after++
		},
	}

	cfg, err := NewConfig(
		WithStore(store),
		WithDefaultLocale("en"),
		WithTranslatorHooks(hook, nil),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	translator, err := cfg.BuildTranslator()
	if err != nil {
		t.Fatalf("BuildTranslator: %v", err)
	}

	if _, err := translator.Translate("en", "home.title"); err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if before != 1 || after != 1 {
		t.Fatalf("expected hook counts 1/1, got %d/%d", before, after)
	}
}

func TestConfigPluralRules(t *testing.T) {
	cfg, err := NewConfig(
		WithDefaultLocale("ru"),
		WithPluralRuleFiles(filepath.Join("testdata", "plural_rules.json")),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	rules, err := cfg.PluralRules("")
	if err != nil {
		t.Fatalf("PluralRules: %v", err)
	}
	if rules.Locale() != "ru" {
		t.Fatalf("Locale() = %q", rules.Locale())
	}

	fr, err := cfg.PluralRules("fr-BE")
	if err != nil {
		t.Fatalf("PluralRules: %v", err)
	}
	if !fr.ResolvedOptions().CustomRules {
		t.Fatal("expected custom rules for fr-BE")
	}

	ordinal, err := cfg.PluralRules("en", WithPluralType(PluralOrdinal))
	if err != nil {
		t.Fatalf("PluralRules: %v", err)
	}
	if got, _ := ordinal.Select(2); got != PluralTwo {
		t.Fatalf("ordinal 2 = %q", got)
	}
}

func TestConfigCustomPluralRules(t *testing.T) {
	groups, err := ParsePluralRule("n = 0..1")
	if err != nil {
		t.Fatalf("ParsePluralRule: %v", err)
	}
	tables := PluralRuleTables{}
	tables.Add(&PluralRuleSet{Locale: "en", Rules: []PluralRule{{Category: PluralOne, Groups: groups}}})

	cfg, err := NewConfig(WithCustomPluralRules(tables))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	rules, err := cfg.PluralRules("en")
	if err != nil {
		t.Fatalf("PluralRules: %v", err)
	}
	if got, _ := rules.Select(0); got != PluralOne {
		t.Fatalf("Select(0) = %q", got)
	}
}

func TestNewConfigInvalidFiles(t *testing.T) {
	if _, err := NewConfig(WithPluralRuleFiles(filepath.Join("testdata", "missing.json"))); err == nil {
		t.Fatal("expected plural rule file error")
	}
	if _, err := NewConfig(WithDatePatternFiles(filepath.Join("testdata", "missing.yaml"))); err == nil {
		t.Fatal("expected date pattern file error")
	}
	if _, err := NewConfig(WithDatePatternOverride("en", "EEEE")); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestConfigFormatDateNumeric(t *testing.T) {
	cfg, err := NewConfig(
		WithDefaultLocale("ko"),
		WithDatePatternOverride("en", "y-MM-dd"),
		WithServerTimeZone("Asia/Tokyo"),
		WithHostLocale(func() (string, error) { return "ru-RU", nil }),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	date := time.Date(2024, time.January, 5, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		locale LocaleConfig
		want   string
	}{
		{LocaleConfig{TimeZone: "UTC"}, "2024. 1. 5."},
		{LocaleConfig{Language: "en", TimeZone: "UTC"}, "2024-01-05"},
		{LocaleConfig{Language: "en", TimeZone: TimeZoneServer}, "2024-01-06"},
		{LocaleConfig{Language: "en", TimeZone: "UTC", DateFormat: DateFormatSystem}, "05.01.2024"},
		{LocaleConfig{Language: "en", TimeZone: "UTC", DateFormat: DateFormatDMY}, "05-01-2024"},
	}

	for _, tc := range tests {
		got, err := cfg.FormatDateNumeric(date, tc.locale)
		if err != nil {
			t.Fatalf("FormatDateNumeric(%+v): %v", tc.locale, err)
		}
		if got != tc.want {
			t.Fatalf("FormatDateNumeric(%+v) = %q want %q", tc.locale, got, tc.want)
		}
	}
}
