package intl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/message"
)

func TestPluralRulesFormatNumber(t *testing.T) {
	tests := []struct {
		locale string
		opts   []PluralRulesOption
		value  any
		want   string
	}{
		{"en", nil, 1234.5, "1,234.5"},
		{"en", nil, 1000000, "1,000,000"},
		{"en", nil, "1.50", "1.50"},
		{"en", nil, 2.71828, "2.718"},
		{"en", []PluralRulesOption{WithFractionDigits(2, 2)}, 3, "3.00"},
		{"de", nil, 1234.5, "1.234,5"},
		{"de", nil, "0.25", "0,25"},
		{"en", nil, "12345678901234567890", "12,345,678,901,234,567,890"},
		{"en", nil, "999999999999999999.125", "999,999,999,999,999,999.125"},
		{"de", nil, "-12345678901234567.5", "-12.345.678.901.234.567,5"},
	}

	for _, tc := range tests {
		rules, err := NewPluralRules(tc.locale, tc.opts...)
		require.NoError(t, err)

		got, err := rules.FormatNumber(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %v", tc.locale, tc.value)
	}
}

func TestPluralRulesFormatNumberNonFinite(t *testing.T) {
	rules, err := NewPluralRules("en")
	require.NoError(t, err)

	got, err := rules.FormatNumber(math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, "+Inf", got)

	_, err = rules.FormatNumber("twelve")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLocaleNumberSymbols(t *testing.T) {
	rules, err := NewPluralRules("en")
	require.NoError(t, err)

	symbols, ok := localeNumberSymbols(message.NewPrinter(rules.tag))
	require.True(t, ok)
	assert.Equal(t, ",", symbols.group)
	assert.Equal(t, ".", symbols.decimal)
	assert.Equal(t, "-", symbols.minus)
	assert.Equal(t, 3, symbols.primary)
	assert.Equal(t, 3, symbols.secondary)

	assert.Equal(t, "123", symbols.render("123"))
	assert.Equal(t, "1,234", symbols.render("1234"))
	assert.Equal(t, "-1,234,567.25", symbols.render("-1234567.25"))

	indian := symbols
	indian.secondary = 2
	assert.Equal(t, "12,34,567", indian.render("1234567"))
}

func TestSignificantDigits(t *testing.T) {
	assert.Equal(t, 3, significantDigits("-1.25"))
	assert.Equal(t, 3, significantDigits("0.00125"))
	assert.Equal(t, 20, significantDigits("12345678901234567890"))
}
