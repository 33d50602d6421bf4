package intl

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// operandCeiling bounds the integer operands. Larger digit strings keep their
// last 18 digits and are shifted above the ceiling so modulo checks and
// "greater than one" checks still hold.
const operandCeiling int64 = 1_000_000_000_000_000_000

// NumericOperands holds the CLDR plural operands of a decimal value.
//
//	Number                                n  absolute value
//	IntegerDigits                         i  absolute integer part
//	NumberOfFractionDigits                v  visible fraction digits, with trailing zeros
//	NumberOfFractionDigitsWithoutTrailing w  visible fraction digits, without trailing zeros
//	FractionDigits                        f  fraction digits as an integer, with trailing zeros
//	FractionDigitsWithoutTrailing         t  fraction digits as an integer, without trailing zeros
type NumericOperands struct {
	Number                                float64
	IntegerDigits                         int64
	NumberOfFractionDigits                int
	NumberOfFractionDigitsWithoutTrailing int
	FractionDigits                        int64
	FractionDigitsWithoutTrailing         int64

	abs           decimal.Decimal
	integerDigits int
}

// GetOperands decomposes a decimal string such as "-12.340" into its plural
// operands. The visible fraction digits of the input are preserved.
func GetOperands(s string) (NumericOperands, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return NumericOperands{}, fmt.Errorf("%w: empty numeric string", ErrInvalidArgument)
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return NumericOperands{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidArgument, s)
	}

	literal := trimmed
	if strings.ContainsAny(literal, "eE") {
		literal = value.String()
	}
	literal = strings.TrimLeft(literal, "+-")

	intPart, fracPart, _ := strings.Cut(literal, ".")
	if !isDigits(intPart) || !isDigits(fracPart) {
		return NumericOperands{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidArgument, s)
	}

	significant := strings.TrimLeft(intPart, "0")
	withoutTrailing := strings.TrimRight(fracPart, "0")

	ops := NumericOperands{
		IntegerDigits:                         reduceDigits(significant),
		NumberOfFractionDigits:                len(fracPart),
		NumberOfFractionDigitsWithoutTrailing: len(withoutTrailing),
		FractionDigits:                        reduceDigits(fracPart),
		FractionDigitsWithoutTrailing:         reduceDigits(withoutTrailing),
		abs:                                   value.Abs(),
		integerDigits:                         max(len(significant), 1),
	}
	ops.Number = ops.abs.InexactFloat64()

	return ops, nil
}

// IntegerDigitCount returns the number of digits of the absolute integer part.
func (o NumericOperands) IntegerDigitCount() int {
	if o.integerDigits == 0 {
		return 1
	}
	return o.integerDigits
}

// Decimal returns the absolute value the operands were derived from.
func (o NumericOperands) Decimal() decimal.Decimal {
	return o.abs
}

// IsInteger reports whether the value has no visible fraction digits.
func (o NumericOperands) IsInteger() bool {
	return o.NumberOfFractionDigits == 0
}

func (o NumericOperands) operand(name string) (decimal.Decimal, bool) {
	switch name {
	case "n":
		return o.abs, true
	case "i":
		return decimal.NewFromInt(o.IntegerDigits), true
	case "v":
		return decimal.NewFromInt(int64(o.NumberOfFractionDigits)), true
	case "w":
		return decimal.NewFromInt(int64(o.NumberOfFractionDigitsWithoutTrailing)), true
	case "f":
		return decimal.NewFromInt(o.FractionDigits), true
	case "t":
		return decimal.NewFromInt(o.FractionDigitsWithoutTrailing), true
	case "e", "c":
		return decimal.Zero, true
	default:
		return decimal.Zero, false
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func reduceDigits(digits string) int64 {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0
	}
	if len(digits) <= 18 {
		value, _ := strconv.ParseInt(digits, 10, 64)
		return value
	}
	value, _ := strconv.ParseInt(digits[len(digits)-18:], 10, 64)
	return value + operandCeiling
}

// numericInput is a value accepted by the plural resolver before formatting.
type numericInput struct {
	value   decimal.Decimal
	literal string
	finite  bool
}

func parseNumericInput(value any) (numericInput, error) {
	switch v := value.(type) {
	case nil:
		return numericInput{}, fmt.Errorf("%w: nil is not a number", ErrInvalidArgument)
	case int:
		return numericInput{value: decimal.NewFromInt(int64(v)), finite: true}, nil
	case int8:
		return numericInput{value: decimal.NewFromInt(int64(v)), finite: true}, nil
	case int16:
		return numericInput{value: decimal.NewFromInt(int64(v)), finite: true}, nil
	case int32:
		return numericInput{value: decimal.NewFromInt32(v), finite: true}, nil
	case int64:
		return numericInput{value: decimal.NewFromInt(v), finite: true}, nil
	case uint:
		return numericInput{value: decimal.NewFromUint64(uint64(v)), finite: true}, nil
	case uint8:
		return numericInput{value: decimal.NewFromInt(int64(v)), finite: true}, nil
	case uint16:
		return numericInput{value: decimal.NewFromInt(int64(v)), finite: true}, nil
	case uint32:
		return numericInput{value: decimal.NewFromInt(int64(v)), finite: true}, nil
	case uint64:
		return numericInput{value: decimal.NewFromUint64(v), finite: true}, nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return numericInput{}, nil
		}
		return numericInput{value: decimal.NewFromFloat32(v), finite: true}, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return numericInput{}, nil
		}
		return numericInput{value: decimal.NewFromFloat(v), finite: true}, nil
	case decimal.Decimal:
		return numericInput{value: v, finite: true}, nil
	case *decimal.Decimal:
		if v == nil {
			return numericInput{}, fmt.Errorf("%w: nil decimal", ErrInvalidArgument)
		}
		return numericInput{value: *v, finite: true}, nil
	case json.Number:
		return parseNumericString(string(v))
	case string:
		return parseNumericString(v)
	default:
		return numericInput{}, fmt.Errorf("%w: %T is not a number", ErrInvalidArgument, value)
	}
}

func parseNumericString(s string) (numericInput, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(strings.TrimLeft(trimmed, "+-")) {
	case "nan", "inf", "infinity":
		return numericInput{}, nil
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil || trimmed == "" {
		return numericInput{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidArgument, s)
	}

	literal := trimmed
	if strings.ContainsAny(literal, "eE") {
		literal = value.String()
	}
	return numericInput{value: value, literal: literal, finite: true}, nil
}

// isNumeric reports whether value is one of the types parseNumericInput accepts
// as a number. Strings only count when they parse.
func isNumeric(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, decimal.Decimal, *decimal.Decimal, json.Number:
		return true
	case string:
		_, err := decimal.NewFromString(strings.TrimSpace(v))
		return err == nil
	default:
		return false
	}
}

func fractionDigitCount(literal string) int {
	_, frac, ok := strings.Cut(literal, ".")
	if !ok {
		return 0
	}
	return len(frac)
}
