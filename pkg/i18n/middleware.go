package i18n

import (
	"net/http"
)

// Middleware returns an HTTP middleware that determines the client's preferred language
// and stores it, together with a fresh Localizer, in the request context.
//
// If no extractor is provided, DefaultLangExtractor is used. When the extractor
// finds nothing, the translator's default language applies.
func Middleware(tr *Translator, extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	fallback := DefaultLanguage
	if tr != nil {
		fallback = tr.defaultLang
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if !lang.Valid() {
				lang = fallback
			}

			w.Header().Set("Content-Language", lang.String())
			w.Header().Add("Vary", "Accept-Language")
			w.Header().Add("Vary", "Cookie")

			ctx := SetLocale(r.Context(), lang)
			ctx = WithLocalizer(ctx, NewLocalizer(tr, lang))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
