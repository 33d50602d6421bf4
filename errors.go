package intl

import "errors"

// ErrMissingTranslation indicates that no translation was found for locale/key.
var ErrMissingTranslation = errors.New("intl: missing translation")

// ErrInvalidArgument marks input that cannot be interpreted, such as a
// non-numeric value handed to the plural resolver.
var ErrInvalidArgument = errors.New("intl: invalid argument")

// ErrInvalidLocale wraps locale tags rejected by the language parser.
var ErrInvalidLocale = errors.New("intl: invalid locale")
