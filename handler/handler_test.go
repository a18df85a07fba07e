package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karkencompany/website/handler"
	"github.com/karkencompany/website/pkg/binder"
	"github.com/karkencompany/website/pkg/i18n"
	"github.com/karkencompany/website/pkg/validator"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

type greetRequest struct {
	Name string `form:"name"`
	Lang string `path:"lang"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	greet := func(ctx handler.Context, req greetRequest) handler.Response {
		return handler.Templ(text(req.Lang + ":" + req.Name))
	}

	r := chi.NewRouter()
	r.Post("/{lang}/greet", handler.Wrap(greet,
		handler.WithBinders[handler.Context, greetRequest](binder.Path(), binder.Form()),
	))

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/lt/greet", strings.NewReader(url.Values{"name": {"Ona"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "lt:Ona", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("bind error uses default handler", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/lt/greet", strings.NewReader("name=x"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("decorators and nil response", func(t *testing.T) {
		t.Parallel()
		var order []string
		trace := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		var got error
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil },
			handler.WithDecorators(trace("outer"), trace("inner")),
			handler.WithErrorHandler[handler.Context, struct{}](func(_ handler.Context, err error) { got = err }),
		)
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner"}, order)
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("context exposes localizer", func(t *testing.T) {
		t.Parallel()
		tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: i18n.Document{
			i18n.Lithuanian: {"hi": "labas"},
			i18n.English:    {"hi": "hello"},
		}}, i18n.WithNoLogging())
		require.NoError(t, err)

		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
			return handler.Templ(text(ctx.Localizer().Text("hi")))
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(i18n.WithLocalizer(req.Context(), i18n.NewLocalizer(tr, i18n.English)))
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, "hello", rec.Body.String())

		rec = httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "hi", rec.Body.String())
	})
}

func datastarRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(handler.DataStarRequestHeader, "true")
	return req
}

func TestTemplResponses(t *testing.T) {
	t.Parallel()

	t.Run("partial vs full", func(t *testing.T) {
		t.Parallel()
		resp := handler.TemplPartial(text(`<form id="contact-form">partial</form>`), text("<html>full</html>"), handler.WithTarget("#contact-form"))

		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/contact", nil)))
		assert.Equal(t, "<html>full</html>", rec.Body.String())

		rec = httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodPost, "/contact")))
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "event: datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), "#contact-form")
		assert.Contains(t, rec.Body.String(), "partial")
	})

	t.Run("multi", func(t *testing.T) {
		t.Parallel()
		resp := handler.TemplMulti(text("page"),
			handler.Patch(text(`<div id="a">a</div>`)),
			handler.Patch(text(`<div>toast</div>`), handler.WithTarget("#toasts"), handler.WithPatchMode(handler.PatchAppend)),
		)
		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodPost, "/contact")))
		body := rec.Body.String()
		assert.Equal(t, 2, strings.Count(body, "event: datastar-patch-elements"))
		assert.Contains(t, body, "append")
	})

	t.Run("status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplStatus(http.StatusNotFound, text("nope")).Render(rec, httptest.NewRequest(http.MethodGet, "/x", nil)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRedirects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"same host", "http://example.com/about", "http://example.com/about"},
		{"relative path", "/products", "/products"},
		{"other host", "http://evil.example/", "/"},
		{"scheme relative", "//evil.example/", "/"},
		{"javascript", "javascript:alert(1)", "/"},
		{"none", "", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "http://example.com/lang/en", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rec := httptest.NewRecorder()
			require.NoError(t, handler.RedirectBack("/").Render(rec, req))
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/contact").Render(rec, datastarRequest(http.MethodPost, "/contact")))
	assert.Contains(t, rec.Body.String(), "/contact")
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	page := func(p handler.ErrorPageParams) templ.Component { return text("page:" + p.Key) }
	toast := func(p handler.ErrorToastParams) templ.Component {
		return text(`<div class="toast">` + p.Type + ":" + p.Key + `</div>`)
	}
	eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{ErrorPage: page, ErrorToast: toast})

	var verrs validator.ValidationErrors
	verrs.Add(validator.ValidationError{Field: "email", Message: "invalid", TranslationKey: "validation.email"})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
	}{
		{"generic", errors.New("boom"), http.StatusInternalServerError, "errors.internal"},
		{"not found", handler.ErrNotFound, http.StatusNotFound, "errors.notFound"},
		{"rate limited", handler.ErrTooManyRequests, http.StatusTooManyRequests, "errors.tooManyRequests"},
		{"validation", verrs, http.StatusBadRequest, "errors.badRequest"},
		{"form validation", handler.ValidationError{"name": {"validation.required"}}, http.StatusBadRequest, "errors.badRequest"},
		{"binder", binder.ErrInvalidForm, http.StatusBadRequest, "errors.badRequest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			eh(handler.NewContext(rec, req), tt.err)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "page:"+tt.wantKey, rec.Body.String())
		})
	}

	t.Run("datastar toast", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := datastarRequest(http.MethodPost, "/contact")
		eh(handler.NewContext(rec, req), handler.ErrTooManyRequests)
		assert.Contains(t, rec.Body.String(), "warning:errors.tooManyRequests")
		assert.Contains(t, rec.Body.String(), "#toasts")
	})

	t.Run("no page configured", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
