package intl

type LocaleCatalog struct {
	Locale   Locale
	Messages map[string]Message
}

type Translations map[string]*LocaleCatalog

// Locale metadata attached to a catalog
type Locale struct {
	Code   string
	Name   string
	Parent string
}

type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// PluralType selects between cardinal (quantity) and ordinal (rank) rules.
type PluralType string

const (
	PluralCardinal PluralType = "cardinal"
	PluralOrdinal  PluralType = "ordinal"
)

type MessageMetadata struct {
	ID     string
	Domain string
	Locale string
}

type MessageVariant struct {
	Template   string
	FormatArgs []string
	UsesCount  bool
	Source     string
}

type Message struct {
	MessageMetadata
	Variants map[PluralCategory]MessageVariant
}

// Variant returns the template for category, falling back to other.
func (m Message) Variant(category PluralCategory) (MessageVariant, bool) {
	if m.Variants == nil {
		return MessageVariant{}, false
	}

	if variant, ok := m.Variants[category]; ok {
		return variant, true
	}

	variant, ok := m.Variants[PluralOther]
	return variant, ok
}

func (m *Message) SetVariant(category PluralCategory, variant MessageVariant) {
	if m.Variants == nil {
		m.Variants = make(map[PluralCategory]MessageVariant)
	}
	m.Variants[category] = variant
}

func (m Message) Content() string {
	if variant, ok := m.Variant(PluralOther); ok {
		return variant.Template
	}
	return ""
}

func (m *Message) SetContent(content string) {
	m.SetVariant(PluralOther, MessageVariant{Template: content})
}

// IsPlural reports whether the message carries more than the other form.
func (m Message) IsPlural() bool {
	if len(m.Variants) > 1 {
		return true
	}
	for category := range m.Variants {
		if category != PluralOther {
			return true
		}
	}
	return false
}

func (m Message) Clone() Message {
	out := Message{MessageMetadata: m.MessageMetadata}
	if len(m.Variants) == 0 {
		return out
	}

	out.Variants = make(map[PluralCategory]MessageVariant, len(m.Variants))
	for category, variant := range m.Variants {
		out.Variants[category] = variant.clone()
	}
	return out
}

func (v MessageVariant) clone() MessageVariant {
	copy := v
	if len(v.FormatArgs) > 0 {
		copy.FormatArgs = append([]string(nil), v.FormatArgs...)
	}
	return copy
}

// MessageCatalog builds a single-locale catalog from plain templates.
func MessageCatalog(locale string, messages map[string]string) *LocaleCatalog {
	catalog := &LocaleCatalog{
		Locale:   Locale{Code: locale},
		Messages: make(map[string]Message, len(messages)),
	}
	for key, template := range messages {
		msg := Message{
			MessageMetadata: MessageMetadata{ID: key, Domain: inferDomain(key), Locale: locale},
		}
		msg.SetVariant(PluralOther, buildVariant(template, ""))
		catalog.Messages[key] = msg
	}
	return catalog
}

var pluralCategories = []PluralCategory{
	PluralZero,
	PluralOne,
	PluralTwo,
	PluralFew,
	PluralMany,
	PluralOther,
}

func pluralCategoryOrder(category PluralCategory) int {
	for i, candidate := range pluralCategories {
		if candidate == category {
			return i
		}
	}
	return 99
}
