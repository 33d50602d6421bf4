package intl

import "sort"

// Store gives read access to translated messages.
type Store interface {
	// Get returns the other form of locale/key.
	Get(locale, key string) (string, bool)
	// Message returns every plural variant of locale/key.
	Message(locale, key string) (Message, bool)
	// Locales lists the locales that have a catalog, sorted.
	Locales() []string
}

type messageRef struct {
	locale string
	key    string
}

// StaticStore is an immutable snapshot of translations indexed by locale and
// key. Lookups accept POSIX style tags such as pt_BR. Catalogs whose locales
// normalize to the same tag are merged, the later tag in sorted order winning
// on conflicting keys.
type StaticStore struct {
	messages map[messageRef]Message
	locales  []string
}

var _ Store = (*StaticStore)(nil)

func NewStaticStore(data Translations) *StaticStore {
	store := &StaticStore{messages: make(map[messageRef]Message)}

	raw := make([]string, 0, len(data))
	for locale, catalog := range data {
		if catalog != nil {
			raw = append(raw, locale)
		}
	}
	sort.Strings(raw)

	seen := make(map[string]struct{}, len(raw))
	for _, locale := range raw {
		catalog := data[locale]
		code := normalizeLocale(locale)
		if code == "" {
			code = normalizeLocale(catalog.Locale.Code)
		}
		if code == "" {
			continue
		}
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			store.locales = append(store.locales, code)
		}
		for key, message := range catalog.Messages {
			store.messages[messageRef{locale: code, key: key}] = message.Clone()
		}
	}
	sort.Strings(store.locales)

	return store
}

// NewStaticStoreFromLoader snapshots what loader returns. A nil loader yields
// an empty store.
func NewStaticStoreFromLoader(loader Loader) (*StaticStore, error) {
	if loader == nil {
		return NewStaticStore(nil), nil
	}
	translations, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return NewStaticStore(translations), nil
}

func (s *StaticStore) Message(locale, key string) (Message, bool) {
	if s == nil {
		return Message{}, false
	}
	message, ok := s.messages[messageRef{locale: normalizeLocale(locale), key: key}]
	if !ok {
		return Message{}, false
	}
	return message.Clone(), true
}

func (s *StaticStore) Get(locale, key string) (string, bool) {
	message, ok := s.Message(locale, key)
	if !ok {
		return "", false
	}
	return message.Content(), true
}

func (s *StaticStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	return append([]string(nil), s.locales...)
}
