package intl

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DateFormatOrder selects how day, month and year are arranged.
type DateFormatOrder string

const (
	DateFormatLanguage DateFormatOrder = "language"
	DateFormatSystem   DateFormatOrder = "system"
	DateFormatDMY      DateFormatOrder = "DMY"
	DateFormatMDY      DateFormatOrder = "MDY"
	DateFormatYMD      DateFormatOrder = "YMD"
)

// ParseDateFormatOrder accepts the enum values case-insensitively. An empty
// string selects the language default.
func ParseDateFormatOrder(raw string) (DateFormatOrder, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "language", "language_default":
		return DateFormatLanguage, nil
	case "system", "system_default":
		return DateFormatSystem, nil
	case "dmy", "day_month_year":
		return DateFormatDMY, nil
	case "mdy", "month_day_year":
		return DateFormatMDY, nil
	case "ymd", "year_month_day":
		return DateFormatYMD, nil
	default:
		return "", fmt.Errorf("%w: unknown date format order %q", ErrInvalidArgument, raw)
	}
}

// TimeZoneOption is either TimeZoneLocal, TimeZoneServer or an IANA zone name.
type TimeZoneOption string

const (
	TimeZoneLocal  TimeZoneOption = "local"
	TimeZoneServer TimeZoneOption = "server"
)

// LocaleConfig carries the per-user formatting preferences.
type LocaleConfig struct {
	Language   string          `json:"language" yaml:"language"`
	TimeZone   TimeZoneOption  `json:"time_zone" yaml:"time_zone"`
	DateFormat DateFormatOrder `json:"date_format" yaml:"date_format"`
}

type dateFormatterConfig struct {
	serverZone   string
	patterns     map[string]string
	systemLocale func() (string, error)
	logger       *zap.Logger
}

type DateFormatterOption func(*dateFormatterConfig)

// WithDateServerTimeZone sets the zone used for TimeZoneServer.
func WithDateServerTimeZone(zone string) DateFormatterOption {
	return func(cfg *dateFormatterConfig) {
		cfg.serverZone = strings.TrimSpace(zone)
	}
}

// WithDatePatterns adds or replaces numeric date patterns per locale.
func WithDatePatterns(patterns map[string]string) DateFormatterOption {
	return func(cfg *dateFormatterConfig) {
		for locale, pattern := range patterns {
			cfg.patterns[normalizeLocale(locale)] = pattern
		}
	}
}

// WithDateSystemLocale overrides host locale detection.
func WithDateSystemLocale(detect func() (string, error)) DateFormatterOption {
	return func(cfg *dateFormatterConfig) {
		if detect != nil {
			cfg.systemLocale = detect
		}
	}
}

func WithDateLogger(logger *zap.Logger) DateFormatterOption {
	return func(cfg *dateFormatterConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// DateFormatter formats dates numerically using per-locale CLDR patterns.
// It is safe for concurrent use.
type DateFormatter struct {
	patterns     map[string]*datePattern
	locales      []string
	matcher      language.Matcher
	serverZone   string
	systemLocale func() (string, error)
	logger       *zap.Logger

	mu       sync.RWMutex
	resolved map[string]*datePattern
	zones    map[string]*time.Location
}

func NewDateFormatter(opts ...DateFormatterOption) (*DateFormatter, error) {
	cfg := dateFormatterConfig{
		patterns:     make(map[string]string, len(numericDatePatterns)),
		systemLocale: SystemLocale,
		logger:       zap.NewNop(),
	}
	for locale, pattern := range numericDatePatterns {
		cfg.patterns[locale] = pattern
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	f := &DateFormatter{
		patterns:     make(map[string]*datePattern, len(cfg.patterns)),
		serverZone:   cfg.serverZone,
		systemLocale: cfg.systemLocale,
		logger:       cfg.logger,
		resolved:     make(map[string]*datePattern),
		zones:        make(map[string]*time.Location),
	}

	for locale, source := range cfg.patterns {
		if locale == "" {
			continue
		}
		compiled, err := parseDatePattern(source)
		if err != nil {
			return nil, fmt.Errorf("intl: date pattern for %q: %w", locale, err)
		}
		f.patterns[locale] = compiled
		f.locales = append(f.locales, locale)
	}

	// the first tag is the matcher's default
	sort.Slice(f.locales, func(i, j int) bool {
		if f.locales[i] == defaultLocale || f.locales[j] == defaultLocale {
			return f.locales[i] == defaultLocale
		}
		return f.locales[i] < f.locales[j]
	})

	tags := make([]language.Tag, 0, len(f.locales))
	for _, locale := range f.locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("intl: date pattern locale: %w", err)
		}
		tags = append(tags, tag)
	}
	f.matcher = language.NewMatcher(tags)

	return f, nil
}

var (
	defaultDateFormatterOnce sync.Once
	defaultDateFormatter     *DateFormatter
	defaultDateFormatterErr  error
)

// FormatDateNumeric formats t with the built-in patterns. See
// DateFormatter.FormatDateNumeric.
func FormatDateNumeric(t time.Time, cfg LocaleConfig) (string, error) {
	defaultDateFormatterOnce.Do(func() {
		defaultDateFormatter, defaultDateFormatterErr = NewDateFormatter()
	})
	if defaultDateFormatterErr != nil {
		return "", defaultDateFormatterErr
	}
	return defaultDateFormatter.FormatDateNumeric(t, cfg)
}

// FormatDateNumeric renders t as a numeric date. The order is read with
// ParseDateFormatOrder, so "dmy" and "DMY" are the same. The language and
// system orders use the locale pattern unchanged; DMY, MDY and YMD rebuild the
// string from the pattern's day, month and year with its first separator,
// keeping any trailing literal.
func (f *DateFormatter) FormatDateNumeric(t time.Time, cfg LocaleConfig) (string, error) {
	order, err := ParseDateFormatOrder(string(cfg.DateFormat))
	if err != nil {
		return "", err
	}

	loc, err := f.Location(cfg.TimeZone)
	if err != nil {
		return "", err
	}

	locale := cfg.Language
	if order == DateFormatSystem {
		locale = f.hostLocale()
	}

	parts, err := f.FormatToParts(t, locale, loc)
	if err != nil {
		return "", err
	}
	if order == DateFormatLanguage || order == DateFormatSystem {
		return joinDateParts(parts), nil
	}

	var day, month, year, separator string
	for _, part := range parts {
		switch part.Type {
		case DatePartDay:
			day = part.Value
		case DatePartMonth:
			month = part.Value
		case DatePartYear:
			year = part.Value
		case DatePartLiteral:
			if separator == "" {
				separator = part.Value
			}
		}
	}

	trailing := ""
	if last := parts[len(parts)-1]; last.Type == DatePartLiteral {
		trailing = last.Value
	}
	// Bulgarian closes the date with " г." which reads wrong after the day.
	if order == DateFormatYMD && baseLanguage(normalizeLocale(locale)) == "bg" {
		trailing = ""
	}

	switch order {
	case DateFormatDMY:
		return day + separator + month + separator + year + trailing, nil
	case DateFormatMDY:
		return month + separator + day + separator + year + trailing, nil
	default:
		return year + separator + month + separator + day + trailing, nil
	}
}

// FormatToParts splits the numeric date for locale into typed parts. A nil
// location keeps t's own zone.
func (f *DateFormatter) FormatToParts(t time.Time, locale string, loc *time.Location) ([]DatePart, error) {
	pattern, err := f.resolve(locale)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		t = t.In(loc)
	}
	return pattern.parts(t), nil
}

// Pattern returns the CLDR pattern used for locale.
func (f *DateFormatter) Pattern(locale string) (string, error) {
	pattern, err := f.resolve(locale)
	if err != nil {
		return "", err
	}
	return pattern.source, nil
}

// Locales lists the locales with a pattern, default locale first.
func (f *DateFormatter) Locales() []string {
	return append([]string(nil), f.locales...)
}

func (f *DateFormatter) resolve(locale string) (*datePattern, error) {
	key := normalizeLocale(locale)

	f.mu.RLock()
	cached, ok := f.resolved[key]
	f.mu.RUnlock()
	if ok {
		return cached, nil
	}

	tag, err := parseLocaleTag(key)
	if err != nil {
		return nil, err
	}

	var pattern *datePattern
	if exact, ok := f.patterns[key]; ok {
		pattern = exact
	} else {
		_, index, confidence := f.matcher.Match(tag)
		if confidence == language.No {
			f.logger.Warn("no date pattern for locale, using default",
				zap.String("locale", key),
				zap.String("default", f.locales[0]),
			)
		}
		pattern = f.patterns[f.locales[index]]
	}

	f.mu.Lock()
	f.resolved[key] = pattern
	f.mu.Unlock()

	return pattern, nil
}

// Location resolves a time zone option. Local uses the process zone, server
// uses the configured server zone (UTC when unset), anything else is loaded
// as an IANA name.
func (f *DateFormatter) Location(option TimeZoneOption) (*time.Location, error) {
	name := strings.TrimSpace(string(option))
	switch TimeZoneOption(name) {
	case "", TimeZoneLocal:
		return time.Local, nil
	case TimeZoneServer:
		name = f.serverZone
		if name == "" {
			return time.UTC, nil
		}
	}

	f.mu.RLock()
	loc, ok := f.zones[name]
	f.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("intl: load time zone %q: %w", name, err)
	}

	f.mu.Lock()
	f.zones[name] = loc
	f.mu.Unlock()

	return loc, nil
}

func (f *DateFormatter) hostLocale() string {
	locale, err := f.systemLocale()
	if err != nil || locale == "" {
		f.logger.Debug("system locale unavailable, using default",
			zap.String("default", defaultLocale),
			zap.Error(err),
		)
		return defaultLocale
	}
	return locale
}
