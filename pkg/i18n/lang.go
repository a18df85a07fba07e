package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the content languages the site is published in.
type Language string

const (
	Lithuanian Language = "lt"
	English    Language = "en"
)

// DefaultLanguage is served when nothing in the request selects a language.
const DefaultLanguage = Lithuanian

// maxAcceptLanguageLength caps the Accept-Language header we are willing to parse.
// 4KB is far above any legitimate header.
const maxAcceptLanguageLength = 4096

var supportedLanguages = []Language{Lithuanian, English}

// Languages returns the supported languages, default first.
func Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage normalizes a language code and reports whether it is supported.
// Region subtags are dropped, so "en-GB" resolves to English.
func ParseLanguage(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		code = code[:idx]
	}
	for _, l := range supportedLanguages {
		if string(l) == code {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return slices.Contains(supportedLanguages, l)
}

func (l Language) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	return language.Make(string(l))
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supportedLanguages))
	for i, l := range supportedLanguages {
		tags[i] = l.Tag()
	}
	return language.NewMatcher(tags)
}()

// NegotiateLanguage picks the best supported language for an Accept-Language header.
// Returns fallback when the header is empty, malformed or matches nothing.
func NegotiateLanguage(header string, fallback Language) Language {
	header = strings.TrimSpace(header)
	if header == "" {
		return fallback
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supportedLanguages[idx]
}
