package i18n

import (
	"context"
)

type (
	localeContextKey    struct{}
	localizerContextKey struct{}
)

// SetLocale sets the locale in the context.
func SetLocale(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// GetLocale returns the locale from the context.
// If no locale is set, will return DefaultLanguage.
func GetLocale(ctx context.Context) Language {
	lang, _ := ctx.Value(localeContextKey{}).(Language)
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// WithLocalizer stores the request localizer in the context.
func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, localizerContextKey{}, l)
}

// LocalizerFromContext returns the request localizer or nil.
// A nil *Localizer is usable and echoes keys back.
func LocalizerFromContext(ctx context.Context) *Localizer {
	l, _ := ctx.Value(localizerContextKey{}).(*Localizer)
	return l
}
