package intl

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// float64Digits is the precision x/text can print exactly, since it formats
// through float64.
const float64Digits = 15

// FormatNumber renders value with the locale's grouping and decimal
// separators, showing the same fraction digits plural selection sees.
// NaN and infinities are printed as given.
func (p *PluralRules) FormatNumber(value any) (string, error) {
	input, err := parseNumericInput(value)
	if err != nil {
		return "", err
	}
	if !input.finite {
		return fmt.Sprint(value), nil
	}

	formatted := p.format(input)
	printer := message.NewPrinter(p.tag)

	if significantDigits(formatted) > float64Digits {
		if symbols, ok := localeNumberSymbols(printer); ok {
			return symbols.render(formatted), nil
		}
	}

	digits := fractionDigitCount(formatted)
	amount, _ := input.value.Round(int32(digits)).Float64()

	return printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	)), nil
}

func significantDigits(formatted string) int {
	digits := strings.ReplaceAll(strings.TrimLeft(formatted, "+-"), ".", "")
	return len(strings.TrimLeft(digits, "0"))
}

// numberSymbols are the digits, separators and grouping sizes a locale uses,
// read back from a sample x/text prints.
type numberSymbols struct {
	digits    [10]string
	group     string
	decimal   string
	minus     string
	suffix    string
	primary   int
	secondary int
}

func localeNumberSymbols(printer *message.Printer) (numberSymbols, bool) {
	sample := []rune(printer.Sprint(number.Decimal(-1234567890.5,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	)))

	var positions []int
	for i, r := range sample {
		if unicode.IsDigit(r) {
			positions = append(positions, i)
		}
	}
	if len(positions) != 11 {
		return numberSymbols{}, false
	}

	var symbols numberSymbols
	for i, pos := range positions[:10] {
		symbols.digits[(i+1)%10] = string(sample[pos])
	}
	symbols.minus = string(sample[:positions[0]])
	symbols.decimal = string(sample[positions[9]+1 : positions[10]])
	symbols.suffix = string(sample[positions[10]+1:])

	// 1234567890 split into its printed groups
	sizes := make([]int, 0, 5)
	size := 1
	for i := 1; i < 10; i++ {
		if positions[i] == positions[i-1]+1 {
			size++
			continue
		}
		if symbols.group == "" {
			symbols.group = string(sample[positions[i-1]+1 : positions[i]])
		}
		sizes = append(sizes, size)
		size = 1
	}
	sizes = append(sizes, size)
	if len(sizes) > 1 {
		symbols.primary = sizes[len(sizes)-1]
		symbols.secondary = sizes[len(sizes)-2]
	}
	return symbols, true
}

// render prints a plain decimal string such as "-12345678901234567.5".
func (s numberSymbols) render(formatted string) string {
	negative := strings.HasPrefix(formatted, "-")
	intPart, fracPart, _ := strings.Cut(strings.TrimLeft(formatted, "+-"), ".")
	if intPart = strings.TrimLeft(intPart, "0"); intPart == "" {
		intPart = "0"
	}

	var b strings.Builder
	if negative {
		b.WriteString(s.minus)
	}
	for i, r := range intPart {
		if i > 0 && s.groupsBefore(len(intPart)-i) {
			b.WriteString(s.group)
		}
		b.WriteString(s.digits[r-'0'])
	}
	if fracPart != "" {
		b.WriteString(s.decimal)
		for _, r := range fracPart {
			b.WriteString(s.digits[r-'0'])
		}
	}
	if negative {
		b.WriteString(s.suffix)
	}
	return b.String()
}

// groupsBefore reports whether a group separator precedes the digit that has
// remaining digits, itself included, up to the decimal point.
func (s numberSymbols) groupsBefore(remaining int) bool {
	switch {
	case s.primary == 0:
		return false
	case remaining == s.primary:
		return true
	case remaining > s.primary && s.secondary > 0:
		return (remaining-s.primary)%s.secondary == 0
	default:
		return false
	}
}
