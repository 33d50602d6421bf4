package intl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocaleTag(t *testing.T) {
	tag, err := parseLocaleTag("")
	require.NoError(t, err)
	assert.Equal(t, "en", tag.String())

	tag, err = parseLocaleTag("sr_Latn_RS")
	require.NoError(t, err)
	assert.Equal(t, "sr-Latn-RS", tag.String())

	_, err = parseLocaleTag("en US")
	assert.ErrorIs(t, err, ErrInvalidLocale)
}

func TestNormalizeSystemLocale(t *testing.T) {
	tests := map[string]string{
		"de_DE.UTF-8":      "de-DE",
		"ca_ES@valencia":   "ca-ES",
		" en-GB ":          "en-GB",
		"C":                "",
		"POSIX":            "",
		"fr_FR.UTF-8@euro": "fr-FR",
		"":                 "",
	}
	for raw, want := range tests {
		assert.Equal(t, want, normalizeSystemLocale(raw), raw)
	}
}

func TestNormalizeLocales(t *testing.T) {
	assert.Equal(t, []string{"en", "es-MX", "pt-BR"}, normalizeLocales([]string{"pt_BR", " en", "es_MX", "", "en"}))
	assert.Nil(t, normalizeLocales(nil))
}

func TestLocaleParentTag(t *testing.T) {
	assert.Equal(t, "es-419", localeParentTag("es-MX"))
	assert.Equal(t, "pt-PT", localeParentTag("pt-AO"))
	assert.Equal(t, "", localeParentTag("de"))
	assert.Equal(t, "", localeParentTag(""))
}

func TestBaseLanguage(t *testing.T) {
	assert.Equal(t, "bg", baseLanguage("bg-BG"))
	assert.Equal(t, "zh", baseLanguage("zh-Hant-TW"))
	assert.Equal(t, "", baseLanguage("und"))
	assert.Equal(t, "", baseLanguage("und-BG"))
	assert.Equal(t, "sr", baseLanguage("sr-Latn-RS"))
	assert.Equal(t, "", baseLanguage("not valid!"))
}
