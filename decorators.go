package intl

import "go.uber.org/zap"

// TranslationHook observes translations. AfterTranslate may rewrite the
// result or error on the context.
type TranslationHook interface {
	BeforeTranslate(ctx *TranslatorHookContext)
	AfterTranslate(ctx *TranslatorHookContext)
}

type TranslatorHookContext struct {
	Locale   string
	Key      string
	Args     []any
	Result   string
	Error    error
	Metadata map[string]any
}

func (ctx *TranslatorHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
	ctx.Metadata[key] = value
}

func (ctx *TranslatorHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// ResolvedLocale returns the locale whose catalog served the message.
func (ctx *TranslatorHookContext) ResolvedLocale() string {
	value, _ := ctx.MetadataValue(metadataLocale)
	locale, _ := value.(string)
	return locale
}

// PluralMetadata returns plural selection details if the message was plural.
func (ctx *TranslatorHookContext) PluralMetadata() (PluralHookMetadata, bool) {
	if ctx == nil || len(ctx.Metadata) == 0 {
		return PluralHookMetadata{}, false
	}

	meta := PluralHookMetadata{}
	seen := false

	if value, ok := ctx.Metadata[metadataPluralCategory]; ok {
		if category, okCast := value.(PluralCategory); okCast {
			meta.Category = category
			seen = true
		}
	}

	if value, ok := ctx.Metadata[metadataPluralCount]; ok {
		meta.Count = value
		seen = true
	}

	if value, ok := ctx.Metadata[metadataPluralMessage]; ok {
		if message, okCast := value.(string); okCast {
			meta.Message = message
			seen = true
		}
	}

	if value, ok := ctx.Metadata[metadataPluralMissing]; ok {
		if missing, okCast := value.(PluralMissingEvent); okCast {
			meta.Missing = &missing
			seen = true
		}
	}

	return meta, seen
}

type PluralHookMetadata struct {
	Category PluralCategory
	Count    any
	Message  string
	Missing  *PluralMissingEvent
}

// PluralMissingEvent records a selected category with no variant in the catalog.
type PluralMissingEvent struct {
	Requested PluralCategory
	Fallback  PluralCategory
}

type TranslationHookFuncs struct {
	Before func(ctx *TranslatorHookContext)
	After  func(ctx *TranslatorHookContext)
}

func (h TranslationHookFuncs) BeforeTranslate(ctx *TranslatorHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h TranslationHookFuncs) AfterTranslate(ctx *TranslatorHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

// LoggingHook logs missing translations and plural variant fallbacks.
func LoggingHook(logger *zap.Logger) TranslationHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return TranslationHookFuncs{
		After: func(ctx *TranslatorHookContext) {
			if ctx.Error != nil {
				logger.Warn("translation failed",
					zap.String("locale", ctx.Locale),
					zap.String("key", ctx.Key),
					zap.Error(ctx.Error),
				)
				return
			}
			if meta, ok := ctx.PluralMetadata(); ok && meta.Missing != nil {
				logger.Info("plural variant missing",
					zap.String("locale", ctx.ResolvedLocale()),
					zap.String("key", ctx.Key),
					zap.String("requested", string(meta.Missing.Requested)),
					zap.String("fallback", string(meta.Missing.Fallback)),
				)
			}
		},
	}
}

var _ Translator = &HookedTranslator{}

type HookedTranslator struct {
	next  Translator
	hooks []TranslationHook
}

func WrapTranslatorWithHooks(next Translator, hooks ...TranslationHook) Translator {
	if next == nil || len(hooks) == 0 {
		return next
	}

	filtered := make([]TranslationHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		filtered = append(filtered, hook)
	}

	if len(filtered) == 0 {
		return next
	}

	return &HookedTranslator{next: next, hooks: filtered}
}

func (t *HookedTranslator) Translate(locale, key string, args ...any) (string, error) {
	if t == nil || t.next == nil {
		return "", ErrMissingTranslation
	}

	ctx := &TranslatorHookContext{
		Locale: locale,
		Key:    key,
		Args:   args,
	}

	for _, hook := range t.hooks {
		hook.BeforeTranslate(ctx)
	}

	var (
		result   string
		err      error
		metadata map[string]any
	)

	if mt, ok := t.next.(metadataTranslator); ok {
		result, metadata, err = mt.TranslateWithMetadata(ctx.Locale, ctx.Key, ctx.Args...)
		for key, value := range metadata {
			ctx.SetMetadata(key, value)
		}
	} else {
		result, err = t.next.Translate(ctx.Locale, ctx.Key, ctx.Args...)
	}

	ctx.Result = result
	ctx.Error = err

	for _, hook := range t.hooks {
		hook.AfterTranslate(ctx)
	}

	return ctx.Result, ctx.Error
}
