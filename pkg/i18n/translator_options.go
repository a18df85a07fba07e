package i18n

import (
	"io"
	"log/slog"
)

// Option is a function that configures a Translator instance.
type Option func(*Translator)

// MissingKeyFunc receives a diagnostic whenever a lookup falls back.
// err wraps ErrKeyNotFound or ErrShapeMismatch.
type MissingKeyFunc func(lang Language, key string, err error)

// WithDefaultLanguage sets the language used for unsupported requests.
func WithDefaultLanguage(lang Language) Option {
	return func(t *Translator) {
		if lang.Valid() {
			t.defaultLang = lang
		}
	}
}

// WithLogger provides a customizable logger for the translator.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging controls whether fallbacks are logged as warnings.
// Default is false to avoid noisy logs on pages with optional content.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.missingLogMode = log
	}
}

// WithMissingKeyHandler registers a hook called on every fallback, in addition
// to logging. Content review tooling uses it to collect gaps.
func WithMissingKeyHandler(fn MissingKeyFunc) Option {
	return func(t *Translator) {
		if fn != nil {
			t.onMissing = append(t.onMissing, fn)
		}
	}
}

// WithNoLogging is a convenience option that disables all logging.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		t.missingLogMode = false
	}
}
