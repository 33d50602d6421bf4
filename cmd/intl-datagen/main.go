package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cldr "golang.org/x/text/unicode/cldr"
)

// numericSkeleton is the CLDR availableFormats id of the numeric
// year-month-day date.
const numericSkeleton = "yMd"

type generatorConfig struct {
	pkg      string
	out      string
	cldrPath string
	locales  []string
}

type patternEntry struct {
	Locale  string
	Pattern string
	Source  string
}

type localeFlag struct {
	items []string
}

func (f *localeFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *localeFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "intl-datagen: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var localeList localeFlag

	flag.StringVar(&cfg.pkg, "pkg", "intl", "package name for generated file")
	flag.StringVar(&cfg.out, "out", "date_patterns_data.go", "path to generated Go file")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects a main/ subdirectory)")
	flag.Var(&localeList, "locale", "locale to generate, comma separated or repeated")

	flag.Parse()

	if len(localeList.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}
	for _, locale := range localeList.items {
		cfg.locales = append(cfg.locales, strings.ReplaceAll(locale, "_", "-"))
	}

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}
	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(cfg.locales))
	entries := make([]patternEntry, 0, len(cfg.locales))
	for _, locale := range cfg.locales {
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}

		pattern, source, err := findNumericPattern(data, locale)
		if err != nil {
			return fmt.Errorf("pattern for %s: %w", locale, err)
		}
		entries = append(entries, patternEntry{Locale: locale, Pattern: pattern, Source: source})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Locale < entries[j].Locale
	})

	source, err := renderSource(cfg.pkg, entries)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}

	return os.WriteFile(cfg.out, source, 0o644)
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

// findNumericPattern walks the locale's truncation chain down to root and
// returns the first gregorian yMd pattern, with the LDML file it came from.
func findNumericPattern(data *cldr.CLDR, locale string) (string, string, error) {
	candidate := strings.ReplaceAll(locale, "-", "_")
	for candidate != "" {
		if pattern := extractNumericPattern(data.RawLDML(candidate)); pattern != "" {
			return pattern, candidate, nil
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}

	if pattern := extractNumericPattern(data.RawLDML("root")); pattern != "" {
		return pattern, "root", nil
	}
	return "", "", errors.New("no yMd pattern in locale chain")
}

func extractNumericPattern(ldml *cldr.LDML) string {
	if ldml == nil || ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return ""
	}

	for _, calendar := range ldml.Dates.Calendars.Calendar {
		if calendar == nil || calendar.Type != "gregorian" || calendar.DateTimeFormats == nil {
			continue
		}
		for _, formats := range calendar.DateTimeFormats.AvailableFormats {
			if formats == nil {
				continue
			}
			for _, item := range formats.DateFormatItem {
				if item == nil || item.Id != numericSkeleton {
					continue
				}
				if item.Alt != "" {
					continue
				}
				return item.Data()
			}
		}
	}
	return ""
}

func renderSource(pkg string, entries []patternEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by intl-datagen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	buf.WriteString("var numericDatePatterns = map[string]string{\n")
	for _, entry := range entries {
		if entry.Source != strings.ReplaceAll(entry.Locale, "-", "_") {
			fmt.Fprintf(&buf, "\t%q: %q, // from %s\n", entry.Locale, entry.Pattern, entry.Source)
			continue
		}
		fmt.Fprintf(&buf, "\t%q: %q,\n", entry.Locale, entry.Pattern)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("var generatedDateLocales = []string{\n")
	for _, entry := range entries {
		fmt.Fprintf(&buf, "\t%q,\n", entry.Locale)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// GeneratedDateLocales lists the locales with built-in numeric date patterns.\n")
	buf.WriteString("func GeneratedDateLocales() []string {\n")
	buf.WriteString("\treturn append([]string{}, generatedDateLocales...)\n")
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
