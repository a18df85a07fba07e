package i18n

import (
	"net/http"
	"strings"
)

// LangExtractor picks a language from the request. It returns an empty
// Language when the request expresses no usable preference.
type LangExtractor func(r *http.Request) Language

// DefaultCookieName is the cookie holding the visitor's language choice.
const DefaultCookieName = "lang"

// maxLangCodeLength is the maximum allowed length for a language code
const maxLangCodeLength = 35 // RFC 5646 recommends 35 characters max

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie name to check for language preference
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name == "" {
			return
		}
		c.CookieName = name
	}
}

// WithQueryParamName sets the query parameter name to check for language
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name == "" {
			return
		}
		c.QueryParamName = name
	}
}

// DefaultLangExtractor creates a language extractor that checks multiple sources in priority order:
// 1. Cookie (default name: "lang")
// 2. Query parameter (default name: "lang")
// 3. Language header
// 4. Accept-Language header, negotiated against the supported languages
//
// Values naming an unsupported language are skipped, not returned.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	config := &ExtractorConfig{
		CookieName:     DefaultCookieName,
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(config)
	}

	return func(r *http.Request) Language {
		if config.CookieName != "" {
			if cookie, err := r.Cookie(config.CookieName); err == nil {
				if lang, ok := parseCode(cookie.Value); ok {
					return lang
				}
			}
		}

		if config.QueryParamName != "" {
			if lang, ok := parseCode(r.URL.Query().Get(config.QueryParamName)); ok {
				return lang
			}
		}

		// non-standard but sometimes used
		if lang, ok := parseCode(r.Header.Get("Language")); ok {
			return lang
		}

		if header := r.Header.Get("Accept-Language"); header != "" {
			return NegotiateLanguage(header, "")
		}

		return ""
	}
}

func parseCode(code string) (Language, bool) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > maxLangCodeLength {
		return "", false
	}
	return ParseLanguage(code)
}
