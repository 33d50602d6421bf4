package intl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type datePatternFile struct {
	Patterns map[string]string `json:"patterns" yaml:"patterns"`
}

// LoadDatePatternFiles reads numeric date pattern overrides. Files map locale
// codes to CLDR patterns, either at the top level or under "patterns".
// Later files win.
func LoadDatePatternFiles(paths ...string) (map[string]string, error) {
	patterns := make(map[string]string)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("intl: read date patterns %s: %w", path, err)
		}

		parsed, err := decodeDatePatterns(path, data)
		if err != nil {
			return nil, fmt.Errorf("intl: decode date patterns %s: %w", path, err)
		}

		for locale, pattern := range parsed {
			locale = normalizeLocale(locale)
			if locale == "" {
				return nil, fmt.Errorf("intl: empty locale in %s", path)
			}
			if _, err := parseDatePattern(pattern); err != nil {
				return nil, fmt.Errorf("intl: %s/%s: %w", path, locale, err)
			}
			patterns[locale] = pattern
		}
	}
	return patterns, nil
}

func decodeDatePatterns(path string, data []byte) (map[string]string, error) {
	var (
		wrapper datePatternFile
		direct  map[string]string
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Patterns) > 0 {
			return wrapper.Patterns, nil
		}
		if err := json.Unmarshal(data, &direct); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &wrapper); err == nil && len(wrapper.Patterns) > 0 {
			return wrapper.Patterns, nil
		}
		if err := yaml.Unmarshal(data, &direct); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(direct) == 0 {
		return nil, fmt.Errorf("no date patterns defined")
	}
	return direct, nil
}
