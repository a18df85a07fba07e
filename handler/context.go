package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/karkencompany/website/pkg/i18n"
)

// Context gives typed handlers the request, the writer and the
// request-scoped Localizer. It is itself a context.Context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// SSE is nil unless the request came from datastar.
	SSE() *datastar.ServerSentEventGenerator
	Localizer() *i18n.Localizer
}

func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}

type httpContext struct {
	w   http.ResponseWriter
	r   *http.Request
	sse *datastar.ServerSentEventGenerator
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

// SSE opens the event stream lazily, so handlers that end up redirecting
// or failing have not committed the response headers yet.
func (c *httpContext) SSE() *datastar.ServerSentEventGenerator {
	if c.sse == nil && IsDataStar(c.r) {
		c.sse = datastar.NewSSE(c.w, c.r)
	}
	return c.sse
}

// Localizer returns the request Localizer installed by i18n.Middleware.
// It may be nil; Localizer methods are nil safe and echo keys.
func (c *httpContext) Localizer() *i18n.Localizer {
	return i18n.LocalizerFromContext(c.r.Context())
}

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }
