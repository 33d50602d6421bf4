package intl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader retrieves the translations used to seed a Store.
type Loader interface {
	Load() (Translations, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func() (Translations, error)

func (fn LoaderFunc) Load() (Translations, error) {
	return fn()
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// FileLoader reads message catalogs from JSON or YAML files shaped as
// locale -> key -> template, where a template is either a string or a map of
// plural category to string. Later files override earlier ones variant by
// variant. Plural variants the owning locale can never select are rejected.
type FileLoader struct {
	paths   []string
	plurals PluralRuleTables
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// WithPluralRules returns a copy of the loader that checks plural variants
// against tables before the built-in CLDR rules.
func (l *FileLoader) WithPluralRules(tables PluralRuleTables) *FileLoader {
	if l == nil {
		return nil
	}
	return &FileLoader{paths: l.paths, plurals: tables}
}

func (l *FileLoader) Load() (Translations, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("intl: no loader paths configured")
	}

	catalogs := make(Translations)
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("intl: read %s: %w", path, err)
		}
		doc, err := decodeCatalogDocument(path, data)
		if err != nil {
			return nil, fmt.Errorf("intl: decode %s: %w", path, err)
		}
		if err := mergeCatalogDocument(catalogs, doc, path); err != nil {
			return nil, fmt.Errorf("intl: %s: %w", path, err)
		}
	}

	for _, issue := range CheckPluralCatalogs(catalogs, l.plurals) {
		if len(issue.Unreachable) > 0 {
			return nil, fmt.Errorf("%w: %s/%s defines %s, which %s never selects",
				ErrInvalidArgument, issue.Locale, issue.Key, joinCategories(issue.Unreachable), issue.Locale)
		}
	}

	return catalogs, nil
}

// catalogDocument is one decoded file: locale -> key -> string or variant map.
type catalogDocument map[string]map[string]any

func decodeCatalogDocument(path string, data []byte) (catalogDocument, error) {
	var doc catalogDocument
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(doc) == 0 {
		return nil, errors.New("catalog has no locales")
	}
	return doc, nil
}

func mergeCatalogDocument(catalogs Translations, doc catalogDocument, source string) error {
	for rawLocale, entries := range doc {
		locale := normalizeLocale(rawLocale)
		if locale == "" {
			return errors.New("empty locale")
		}

		catalog, ok := catalogs[locale]
		if !ok {
			catalog = &LocaleCatalog{
				Locale:   Locale{Code: locale, Parent: localeParentTag(locale)},
				Messages: make(map[string]Message, len(entries)),
			}
			catalogs[locale] = catalog
		}

		for key, value := range entries {
			if key == "" {
				return fmt.Errorf("empty key in %s", locale)
			}
			message, err := buildMessage(locale, key, value, source)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", locale, key, err)
			}

			existing, ok := catalog.Messages[key]
			if !ok {
				catalog.Messages[key] = message
				continue
			}
			existing.MessageMetadata = message.MessageMetadata
			for category, variant := range message.Variants {
				existing.SetVariant(category, variant)
			}
			catalog.Messages[key] = existing
		}
	}
	return nil
}

// buildMessage turns a decoded value into a message. A lone plural variant
// becomes the other form; several variants must include other.
func buildMessage(locale, key string, value any, source string) (Message, error) {
	templates := make(map[PluralCategory]string)
	switch v := value.(type) {
	case string:
		templates[PluralOther] = v
	case map[string]any:
		for name, raw := range v {
			category, err := parsePluralCategory(name)
			if err != nil {
				return Message{}, err
			}
			template, ok := raw.(string)
			if !ok {
				return Message{}, fmt.Errorf("plural variant %s must be a string, got %T", name, raw)
			}
			templates[category] = template
		}
	default:
		return Message{}, fmt.Errorf("unsupported message value type: %T", value)
	}

	if _, ok := templates[PluralOther]; !ok {
		switch len(templates) {
		case 0:
			return Message{}, fmt.Errorf("no variants defined for %s", key)
		case 1:
			for category, template := range templates {
				delete(templates, category)
				templates[PluralOther] = template
				break
			}
		default:
			return Message{}, fmt.Errorf("missing 'other' plural form for %s", key)
		}
	}

	message := Message{
		MessageMetadata: MessageMetadata{ID: key, Domain: inferDomain(key), Locale: locale},
	}
	for category, template := range templates {
		message.SetVariant(category, buildVariant(template, source))
	}
	return message, nil
}

func buildVariant(template, source string) MessageVariant {
	return MessageVariant{
		Template:   template,
		Source:     source,
		UsesCount:  strings.Contains(template, countPlaceholder),
		FormatArgs: extractFormatArgs(template),
	}
}

// extractFormatArgs lists the named placeholders of template other than
// {count}, sorted and without duplicates.
func extractFormatArgs(template string) []string {
	seen := make(map[string]struct{})
	var args []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if strings.EqualFold(name, "count") {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		args = append(args, name)
	}
	sort.Strings(args)
	return args
}

func inferDomain(key string) string {
	if domain, _, ok := strings.Cut(key, "."); ok && domain != "" {
		return domain
	}
	return "default"
}
