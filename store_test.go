package intl

import "testing"

func TestStaticStoreGet(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": MessageCatalog("en", map[string]string{"home.title": "Welcome"}),
		"es": MessageCatalog("es", map[string]string{"home.title": "Bienvenido"}),
	})

	tests := []struct {
		locale string
		key    string
		want   string
		ok     bool
	}{
		{locale: "en", key: "home.title", want: "Welcome", ok: true},
		{locale: "es", key: "home.title", want: "Bienvenido", ok: true},
		{locale: "en", key: "missing", want: "", ok: false},
		{locale: "fr", key: "home.title", want: "", ok: false},
	}

	for _, tc := range tests {
		got, ok := store.Get(tc.locale, tc.key)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Get(%q,%q) = %q,%v want %q,%v", tc.locale, tc.key, got, ok, tc.want, tc.ok)
		}
	}

	locales := store.Locales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "es" {
		t.Fatalf("Locales() = %v", locales)
	}
}

func TestNewStaticStoreCopiesInput(t *testing.T) {
	src := Translations{
		"en": MessageCatalog("en", map[string]string{"home.title": "Welcome"}),
	}

	store := NewStaticStore(src)

	src["en"].Messages["home.title"] = Message{
		MessageMetadata: MessageMetadata{ID: "home.title", Locale: "en"},
		Variants:        map[PluralCategory]MessageVariant{PluralOther: {Template: "Changed"}},
	}
	src["en"].Messages["new"] = Message{
		MessageMetadata: MessageMetadata{ID: "new", Locale: "en"},
		Variants:        map[PluralCategory]MessageVariant{PluralOther: {Template: "new"}},
	}

	got, ok := store.Get("en", "home.title")
	if !ok || got != "Welcome" {
		t.Fatalf("expected snapshot to remain unchanged, got %q, ok=%v", got, ok)
	}

	if _, ok := store.Get("en", "new"); ok {
		t.Fatal("unexpected key copied from mutated input")
	}
}

func TestStaticStoreMessageReturnsClone(t *testing.T) {
	catalog := MessageCatalog("en", nil)
	msg := Message{MessageMetadata: MessageMetadata{ID: "cart.items", Locale: "en"}}
	msg.SetVariant(PluralOne, MessageVariant{Template: "{count} item", UsesCount: true})
	msg.SetVariant(PluralOther, MessageVariant{Template: "{count} items", UsesCount: true})
	catalog.Messages["cart.items"] = msg

	store := NewStaticStore(Translations{"en": catalog})

	first, ok := store.Message("en", "cart.items")
	if !ok {
		t.Fatal("expected plural message")
	}
	if !first.IsPlural() {
		t.Fatal("expected message to be plural")
	}
	first.SetVariant(PluralOne, MessageVariant{Template: "mutated"})

	second, _ := store.Message("en", "cart.items")
	if variant, _ := second.Variant(PluralOne); variant.Template != "{count} item" {
		t.Fatalf("store leaked mutation: %q", variant.Template)
	}

	if got, _ := store.Get("en", "cart.items"); got != "{count} items" {
		t.Fatalf("Get should return the other variant, got %q", got)
	}
}

func TestNewStaticStoreNormalizesLocales(t *testing.T) {
	store := NewStaticStore(Translations{
		"pt_BR": MessageCatalog("pt_BR", map[string]string{"home.title": "Bem-vindo"}),
		"de":    nil,
	})

	if got, ok := store.Get("pt-BR", "home.title"); !ok || got != "Bem-vindo" {
		t.Fatalf("Get(pt-BR) = %q,%v", got, ok)
	}

	locales := store.Locales()
	if len(locales) != 1 || locales[0] != "pt-BR" {
		t.Fatalf("Locales() = %v", locales)
	}
}

func TestNewStaticStoreFromLoader(t *testing.T) {
	loader := LoaderFunc(func() (Translations, error) {
		return Translations{
			"en": MessageCatalog("en", map[string]string{"home.title": "Welcome"}),
		}, nil
	})

	store, err := NewStaticStoreFromLoader(loader)
	if err != nil {
		t.Fatalf("NewStaticStoreFromLoader: %v", err)
	}
	if got, ok := store.Get("en", "home.title"); !ok || got != "Welcome" {
		t.Fatalf("Get = %q,%v", got, ok)
	}

	empty, err := NewStaticStoreFromLoader(nil)
	if err != nil {
		t.Fatalf("nil loader: %v", err)
	}
	if locales := empty.Locales(); locales != nil {
		t.Fatalf("expected no locales, got %v", locales)
	}

	failing := LoaderFunc(func() (Translations, error) {
		return nil, ErrInvalidArgument
	})
	if _, err := NewStaticStoreFromLoader(failing); err == nil {
		t.Fatal("expected loader error")
	}
}

func TestMessageVariantFallsBackToOther(t *testing.T) {
	msg := Message{}
	if _, ok := msg.Variant(PluralFew); ok {
		t.Fatal("empty message should have no variant")
	}

	msg.SetContent("hello")
	variant, ok := msg.Variant(PluralFew)
	if !ok || variant.Template != "hello" {
		t.Fatalf("Variant(few) = %q,%v", variant.Template, ok)
	}
	if msg.IsPlural() {
		t.Fatal("single other variant is not plural")
	}
}

func TestStaticStoreMessageNormalizesLookup(t *testing.T) {
	store := NewStaticStore(Translations{
		"pt-BR": MessageCatalog("pt-BR", map[string]string{"home.title": "Bem-vindo"}),
	})

	msg, ok := store.Message("pt_BR", "home.title")
	if !ok || msg.Content() != "Bem-vindo" {
		t.Fatalf("Message(pt_BR) = %+v,%v", msg, ok)
	}
}

func TestNewStaticStoreMergesEquivalentLocales(t *testing.T) {
	store := NewStaticStore(Translations{
		"pt-BR": MessageCatalog("pt-BR", map[string]string{"home.title": "Olá", "home.body": "Corpo"}),
		"pt_BR": MessageCatalog("pt_BR", map[string]string{"home.title": "Bem-vindo"}),
	})

	if got, _ := store.Get("pt-BR", "home.title"); got != "Bem-vindo" {
		t.Fatalf("home.title = %q, want the later tag in sorted order", got)
	}
	if got, _ := store.Get("pt-BR", "home.body"); got != "Corpo" {
		t.Fatalf("home.body = %q", got)
	}
	if locales := store.Locales(); len(locales) != 1 || locales[0] != "pt-BR" {
		t.Fatalf("Locales() = %v", locales)
	}
}
