package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karkencompany/website/pkg/i18n"
)

func TestDefaultLangExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		target string
		want   i18n.Language
	}{
		{
			name:   "nothing",
			target: "/",
			want:   "",
		},
		{
			name:   "cookie wins over query",
			target: "/?lang=lt",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
			},
			want: i18n.English,
		},
		{
			name:   "unsupported cookie is skipped",
			target: "/?lang=en",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "lang", Value: "de"})
			},
			want: i18n.English,
		},
		{
			name:   "query with region",
			target: "/?lang=EN-gb",
			want:   i18n.English,
		},
		{
			name:   "language header",
			target: "/",
			setup: func(r *http.Request) {
				r.Header.Set("Language", "lt")
				r.Header.Set("Accept-Language", "en")
			},
			want: i18n.Lithuanian,
		},
		{
			name:   "accept-language negotiation",
			target: "/",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "de-DE,de;q=0.9,en-US;q=0.8")
			},
			want: i18n.English,
		},
		{
			name:   "accept-language without match",
			target: "/",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "ja")
			},
			want: "",
		},
	}

	extract := i18n.DefaultLangExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.setup != nil {
				tt.setup(r)
			}
			assert.Equal(t, tt.want, extract(r))
		})
	}

	t.Run("custom names", func(t *testing.T) {
		t.Parallel()
		extract := i18n.DefaultLangExtractor(i18n.WithCookieName("site_lang"), i18n.WithQueryParamName("l"))
		r := httptest.NewRequest(http.MethodGet, "/?l=en", nil)
		assert.Equal(t, i18n.English, extract(r))
		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "site_lang", Value: "lt"})
		assert.Equal(t, i18n.Lithuanian, extract(r))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	var (
		gotLang i18n.Language
		gotText string
	)
	h := i18n.Middleware(tr, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = i18n.GetLocale(r.Context())
		gotText = i18n.LocalizerFromContext(r.Context()).Text("about.values.quality")
	}))

	r := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, i18n.English, gotLang)
	assert.Equal(t, "Quality", gotText)
	assert.Equal(t, "en", w.Header().Get("Content-Language"))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, i18n.Lithuanian, gotLang)
	assert.Equal(t, "Kokybė", gotText)
}

func TestNegotiateLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.Lithuanian, i18n.NegotiateLanguage("lt-LT,lt;q=0.9", i18n.English))
	assert.Equal(t, i18n.English, i18n.NegotiateLanguage("en-US", i18n.Lithuanian))
	assert.Equal(t, i18n.Lithuanian, i18n.NegotiateLanguage("", i18n.Lithuanian))
	assert.Equal(t, i18n.English, i18n.NegotiateLanguage("zz;;;q=abc", i18n.English))

	lang, ok := i18n.ParseLanguage(" LT_lt ")
	assert.True(t, ok)
	assert.Equal(t, i18n.Lithuanian, lang)
	_, ok = i18n.ParseLanguage("ru")
	assert.False(t, ok)
}
