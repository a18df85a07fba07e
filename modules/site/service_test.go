package site_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karkencompany/website/handler"
	"github.com/karkencompany/website/modules/site"
	"github.com/karkencompany/website/pkg/cookie"
	"github.com/karkencompany/website/pkg/i18n"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	cookies, err := cookie.New([]string{strings.Repeat("k", 32)})
	require.NoError(t, err)

	views := &site.Views{Page: func(p site.PageParams) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s %s %s", p.Page, p.Path, i18n.GetLocale(ctx))
			return err
		})
	}}
	errorPage := func(p handler.ErrorPageParams) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "error %d %s", p.StatusCode, p.Key)
			return err
		})
	}

	svc := site.NewService(views, cookies,
		site.WithErrorHandler(handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{ErrorPage: errorPage})))

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: i18n.Document{
		i18n.Lithuanian: {"x": "x"},
		i18n.English:    {"x": "x"},
	}}, i18n.WithNoLogging())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(i18n.Middleware(tr, nil))
	svc.Register(r)
	return r
}

func TestPages(t *testing.T) {
	t.Parallel()
	r := newRouter(t)

	for path, page := range site.Routes {
		t.Run(string(page), func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, fmt.Sprintf("%s %s lt", page, path), rec.Body.String())
		})
	}

	t.Run("english via cookie", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/about", nil)
		req.AddCookie(&http.Cookie{Name: i18n.DefaultCookieName, Value: "en"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "about /about en", rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/careers", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "error 404 errors.notFound", rec.Body.String())
	})
}

func TestSwitchLanguage(t *testing.T) {
	t.Parallel()
	r := newRouter(t)

	tests := []struct {
		name       string
		target     string
		referer    string
		wantCookie string
		wantTo     string
	}{
		{"english back to referer", "/lang/en", "http://example.com/products", "en", "http://example.com/products"},
		{"lithuanian with redirect param", "/lang/LT?redirect=/about", "", "lt", "/about"},
		{"foreign referer ignored", "/lang/en", "https://evil.example/", "en", "/"},
		{"unknown redirect ignored", "/lang/en?redirect=//evil.example", "", "en", "/"},
		{"unsupported code", "/lang/de", "http://example.com/about", "", "http://example.com/about"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "http://example.com"+tt.target, nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantTo, rec.Header().Get("Location"))

			cookies := rec.Result().Cookies()
			if tt.wantCookie == "" {
				assert.Empty(t, cookies)
				return
			}
			require.Len(t, cookies, 1)
			assert.Equal(t, i18n.DefaultCookieName, cookies[0].Name)
			assert.Equal(t, tt.wantCookie, cookies[0].Value)
			assert.Equal(t, site.LangCookieMaxAge, cookies[0].MaxAge)
		})
	}
}
