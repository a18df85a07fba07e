package i18n

import (
	"log/slog"
	"sync"
)

// Localizer binds a Translator to an active language. It replaces a
// process-wide language selector: each request gets its own instance and
// passes it explicitly to whatever renders content.
type Localizer struct {
	mu   sync.RWMutex
	tr   *Translator
	lang Language
}

// NewLocalizer returns a Localizer for lang, or for the translator's default
// language when lang is not supported.
func NewLocalizer(tr *Translator, lang Language) *Localizer {
	if !lang.Valid() {
		lang = DefaultLanguage
		if tr != nil {
			lang = tr.defaultLang
		}
	}
	return &Localizer{tr: tr, lang: lang}
}

// Language returns the active language.
func (l *Localizer) Language() Language {
	if l == nil {
		return DefaultLanguage
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// SetLanguage switches the active language. Unsupported values are ignored.
// The change is visible to every subsequent lookup.
func (l *Localizer) SetLanguage(lang Language) {
	if l == nil {
		return
	}
	if !lang.Valid() {
		if l.tr != nil {
			l.tr.logger.Warn("ignoring unsupported language", slog.String("lang", string(lang)))
		}
		return
	}
	l.mu.Lock()
	l.lang = lang
	l.mu.Unlock()
}

// Translator returns the underlying translator.
func (l *Localizer) Translator() *Translator {
	if l == nil {
		return nil
	}
	return l.tr
}

// Resolve is Translator.Resolve in the active language.
func (l *Localizer) Resolve(key string) Value {
	if l == nil || l.tr == nil {
		return textValue(key)
	}
	return l.tr.Resolve(l.Language(), key)
}

// Text is Translator.Text in the active language.
func (l *Localizer) Text(key string, args ...any) string {
	if l == nil || l.tr == nil {
		return key
	}
	return l.tr.Text(l.Language(), key, args...)
}

// List is Translator.List in the active language.
func (l *Localizer) List(key string) []string {
	if l == nil || l.tr == nil {
		return []string{key}
	}
	return l.tr.List(l.Language(), key)
}

// Records is Translator.Records in the active language.
func (l *Localizer) Records(key string) []Record {
	if l == nil || l.tr == nil {
		return nil
	}
	return l.tr.Records(l.Language(), key)
}
