package intl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the file form of Config. Relative paths are resolved against
// the directory of the settings file.
type Settings struct {
	DefaultLocale  string              `json:"default_locale" yaml:"default_locale"`
	Locales        []string            `json:"locales" yaml:"locales"`
	Translations   []string            `json:"translations" yaml:"translations"`
	PluralRules    []string            `json:"plural_rules" yaml:"plural_rules"`
	DatePatterns   []string            `json:"date_patterns" yaml:"date_patterns"`
	ServerTimeZone string              `json:"server_time_zone" yaml:"server_time_zone"`
	Fallbacks      map[string][]string `json:"fallbacks" yaml:"fallbacks"`
	// User holds the default per-user preferences, used by the CLI.
	User LocaleConfig `json:"user" yaml:"user"`
}

// LoadSettings reads a YAML or JSON settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intl: read settings %s: %w", path, err)
	}

	var settings Settings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("intl: decode settings %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("intl: decode settings %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("intl: settings %s: unsupported extension %s", path, ext)
	}

	if settings.User.DateFormat != "" {
		order, err := ParseDateFormatOrder(string(settings.User.DateFormat))
		if err != nil {
			return nil, fmt.Errorf("intl: settings %s: %w", path, err)
		}
		settings.User.DateFormat = order
	}

	base := filepath.Dir(path)
	settings.Translations = resolvePaths(base, settings.Translations)
	settings.PluralRules = resolvePaths(base, settings.PluralRules)
	settings.DatePatterns = resolvePaths(base, settings.DatePatterns)

	return &settings, nil
}

func resolvePaths(base string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
		out = append(out, path)
	}
	return out
}
