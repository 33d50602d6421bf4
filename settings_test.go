package intl

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsYAML(t *testing.T) {
	settings, err := LoadSettings(filepath.Join("testdata", "settings.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "en", settings.DefaultLocale)
	assert.Equal(t, []string{"en", "ru"}, settings.Locales)
	assert.Equal(t, []string{
		filepath.Join("testdata", "messages_en.json"),
		filepath.Join("testdata", "messages_ru.yaml"),
	}, settings.Translations)
	assert.Equal(t, []string{filepath.Join("testdata", "plural_rules_cldr.json")}, settings.PluralRules)
	assert.Equal(t, []string{filepath.Join("testdata", "date_patterns.json")}, settings.DatePatterns)
	assert.Equal(t, "Europe/Berlin", settings.ServerTimeZone)
	assert.Equal(t, map[string][]string{"ru": {"en"}}, settings.Fallbacks)
	assert.Equal(t, LocaleConfig{Language: "ru", TimeZone: TimeZoneServer, DateFormat: DateFormatDMY}, settings.User)
}

func TestLoadSettingsJSONKeepsAbsolutePaths(t *testing.T) {
	settings, err := LoadSettings(filepath.Join("testdata", "settings.json"))
	require.NoError(t, err)

	assert.Equal(t, "de", settings.DefaultLocale)
	assert.Equal(t, []string{"/etc/intl/messages.json"}, settings.Translations)
	assert.Nil(t, settings.PluralRules)
	assert.Equal(t, DateFormatLanguage, settings.User.DateFormat)
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"order.yaml":   "user:\n  date_format: weekday\n",
		"broken.json":  `{"locales": [`,
		"broken.yaml":  "locales: [",
		"settings.ini": "default_locale=en",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		_, err := LoadSettings(path)
		assert.Error(t, err, name)
	}

	_, err := LoadSettings(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigWithSettings(t *testing.T) {
	settings, err := LoadSettings(filepath.Join("testdata", "settings.yaml"))
	require.NoError(t, err)

	cfg, err := NewConfig(WithSettings(settings))
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, []string{"cy"}, cfg.PluralRuleTables().Locales(PluralCardinal))

	translator, err := cfg.BuildTranslator()
	require.NoError(t, err)

	got, err := translator.Translate("ru", "home.greeting", "Ира")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ира", got)

	// 23:30 UTC is already the next day in Berlin
	late := sampleDate.Add(13 * time.Hour)
	formatted, err := cfg.FormatDateNumeric(late, settings.User)
	require.NoError(t, err)
	assert.Equal(t, "06.01.2024", formatted)

	formatted, err = cfg.FormatDateNumeric(sampleDate, LocaleConfig{Language: "de", TimeZone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, "05.01.2024", formatted)
}
