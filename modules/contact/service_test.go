package contact_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karkencompany/website/handler"
	"github.com/karkencompany/website/modules/contact"
	"github.com/karkencompany/website/pkg/cookie"
	"github.com/karkencompany/website/pkg/ratelimiter"
)

func text(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

func noticeKey(n *contact.Notice) string {
	if n == nil {
		return "-"
	}
	return n.TitleKey
}

var views = &contact.Views{
	Page: func(p contact.PageParams) templ.Component {
		return text("page state=%s notice=%s errors=%v name=%s", p.Form.State, noticeKey(p.Notice), p.Form.Errors.Fields(), p.Form.Values.Name)
	},
	Form: func(p contact.FormParams) templ.Component {
		return text(`<form id="contact-form">state=%s errors=%v</form>`, p.State, p.Errors.Fields())
	},
	Toast: func(p contact.ToastParams) templ.Component {
		return text(`<div class="toast %s">%s</div>`, p.Notice.Kind, p.Notice.TitleKey)
	},
}

func newRouter(t *testing.T, tr *stubTransport, opts ...contact.ServiceOption) (http.Handler, *cookie.Manager) {
	t.Helper()
	cookies, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)

	svc := contact.NewService(contact.Config{}, tr, creds, cookies, views, opts...)
	r := chi.NewRouter()
	r.Mount("/contact", svc.Handle())
	return r, cookies
}

func post(values url.Values, datastar bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "203.0.113.7:5555"
	if datastar {
		req.Header.Set(handler.DataStarRequestHeader, "true")
	}
	return req
}

func validValues() url.Values {
	return url.Values{
		"name":    {"Jonas Jonaitis"},
		"email":   {"jonas@imone.lt"},
		"message": {"Sveiki"},
	}
}

func TestService(t *testing.T) {
	t.Parallel()

	t.Run("get renders the page", func(t *testing.T) {
		t.Parallel()
		r, _ := newRouter(t, &stubTransport{})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "page state=idle notice=-")
	})

	t.Run("datastar submit patches form and toast", func(t *testing.T) {
		t.Parallel()
		tr := &stubTransport{}
		r, _ := newRouter(t, tr)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, post(validValues(), true))

		body := rec.Body.String()
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		assert.Contains(t, body, "state=submitted")
		assert.Contains(t, body, "contact.toast.sent.title")
		assert.Contains(t, body, contact.ToastTarget)
		assert.Len(t, tr.Calls(), 1)
	})

	t.Run("datastar invalid submit", func(t *testing.T) {
		t.Parallel()
		tr := &stubTransport{}
		r, _ := newRouter(t, tr)
		v := validValues()
		v.Set("email", "not-an-email")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, post(v, true))

		assert.Contains(t, rec.Body.String(), "state=invalid errors=[email]")
		assert.Contains(t, rec.Body.String(), "contact.toast.invalid.title")
		assert.Empty(t, tr.Calls())
	})

	t.Run("plain post redirects with flash", func(t *testing.T) {
		t.Parallel()
		r, _ := newRouter(t, &stubTransport{})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, post(validValues(), false))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/contact", rec.Header().Get("Location"))

		get := httptest.NewRequest(http.MethodGet, "/contact", nil)
		for _, c := range rec.Result().Cookies() {
			get.AddCookie(c)
		}
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, get)
		assert.Contains(t, rec.Body.String(), "page state=submitted notice=contact.toast.sent.title")
	})

	t.Run("plain invalid post keeps input", func(t *testing.T) {
		t.Parallel()
		r, _ := newRouter(t, &stubTransport{})
		v := validValues()
		v.Del("message")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, post(v, false))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "errors=[message] name=Jonas Jonaitis")
	})

	t.Run("rate limited", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()
		t.Cleanup(store.Close)
		bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
		require.NoError(t, err)

		tr := &stubTransport{}
		r, _ := newRouter(t, tr, contact.WithRateLimiter(bucket))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, post(validValues(), true))
		assert.Contains(t, rec.Body.String(), "contact.toast.sent.title")

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, post(validValues(), true))
		assert.Contains(t, rec.Body.String(), "contact.toast.rateLimited.title")
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, post(validValues(), false))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "name=Jonas Jonaitis")

		assert.Len(t, tr.Calls(), 1)
	})
}
