package intl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type DatePartType string

const (
	DatePartDay     DatePartType = "day"
	DatePartMonth   DatePartType = "month"
	DatePartYear    DatePartType = "year"
	DatePartLiteral DatePartType = "literal"
)

// DatePart is one token of a formatted date, as in Intl formatToParts.
type DatePart struct {
	Type  DatePartType
	Value string
}

type datePatternToken struct {
	part    DatePartType
	width   int
	literal string
}

// datePattern is a compiled CLDR numeric date pattern such as "d.MM.y 'г'.".
type datePattern struct {
	source string
	tokens []datePatternToken
}

// parseDatePattern compiles pattern. Only the numeric day (d), month (M, L)
// and year (y) fields are supported; quoted text and any non-letter are
// literals.
func parseDatePattern(pattern string) (*datePattern, error) {
	runes := []rune(pattern)
	compiled := &datePattern{source: pattern}
	var literal strings.Builder
	seen := make(map[DatePartType]bool, 3)

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		compiled.tokens = append(compiled.tokens, datePatternToken{part: DatePartLiteral, literal: literal.String()})
		literal.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				literal.WriteRune('\'')
				i++
				continue
			}
			closed := false
			for i++; i < len(runes); i++ {
				if runes[i] == '\'' {
					if i+1 < len(runes) && runes[i+1] == '\'' {
						literal.WriteRune('\'')
						i++
						continue
					}
					closed = true
					break
				}
				literal.WriteRune(runes[i])
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated quote in date pattern %q", ErrInvalidArgument, pattern)
			}
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			width := 1
			for i+1 < len(runes) && runes[i+1] == r {
				width++
				i++
			}
			part, err := datePatternField(r, width)
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, pattern)
			}
			if seen[part] {
				return nil, fmt.Errorf("%w: repeated %s field in date pattern %q", ErrInvalidArgument, part, pattern)
			}
			seen[part] = true
			flush()
			compiled.tokens = append(compiled.tokens, datePatternToken{part: part, width: width})
		default:
			literal.WriteRune(r)
		}
	}
	flush()

	for _, part := range []DatePartType{DatePartDay, DatePartMonth, DatePartYear} {
		if !seen[part] {
			return nil, fmt.Errorf("%w: date pattern %q has no %s field", ErrInvalidArgument, pattern, part)
		}
	}

	return compiled, nil
}

func datePatternField(letter rune, width int) (DatePartType, error) {
	switch letter {
	case 'd':
		if width <= 2 {
			return DatePartDay, nil
		}
	case 'M', 'L':
		if width <= 2 {
			return DatePartMonth, nil
		}
	case 'y':
		return DatePartYear, nil
	}
	return "", fmt.Errorf("%w: unsupported date field %q", ErrInvalidArgument, strings.Repeat(string(letter), width))
}

func (p *datePattern) parts(t time.Time) []DatePart {
	parts := make([]DatePart, 0, len(p.tokens))
	for _, token := range p.tokens {
		switch token.part {
		case DatePartLiteral:
			parts = append(parts, DatePart{Type: DatePartLiteral, Value: token.literal})
		case DatePartDay:
			parts = append(parts, DatePart{Type: DatePartDay, Value: padNumber(t.Day(), token.width)})
		case DatePartMonth:
			parts = append(parts, DatePart{Type: DatePartMonth, Value: padNumber(int(t.Month()), token.width)})
		case DatePartYear:
			year := t.Year()
			if token.width == 2 {
				year %= 100
				if year < 0 {
					year = -year
				}
			}
			parts = append(parts, DatePart{Type: DatePartYear, Value: padNumber(year, token.width)})
		}
	}
	return parts
}

func padNumber(value, width int) string {
	formatted := strconv.Itoa(value)
	if len(formatted) >= width {
		return formatted
	}
	return strings.Repeat("0", width-len(formatted)) + formatted
}

func joinDateParts(parts []DatePart) string {
	var builder strings.Builder
	for _, part := range parts {
		builder.WriteString(part.Value)
	}
	return builder.String()
}
