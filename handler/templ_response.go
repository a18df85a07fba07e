package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the patch applies to.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component plus its patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(c templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: c, Options: opts}
}

type templResponse struct {
	partials []TemplPatch
	full     templ.Component
	status   int
}

// Render sends the partials as SSE patches to datastar clients and the
// full component as an HTML document otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) && len(t.partials) > 0 {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.partials {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 && t.status != http.StatusOK {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders c as a page, or as a single patch for datastar requests.
func Templ(c templ.Component, opts ...TemplOption) Response {
	return templResponse{partials: []TemplPatch{Patch(c, opts...)}, full: c}
}

// TemplStatus renders c as a page with the given status code.
func TemplStatus(status int, c templ.Component) Response {
	return templResponse{partials: []TemplPatch{Patch(c)}, full: c, status: status}
}

// TemplPartial sends partial to datastar clients and full to everyone else.
//
//	return handler.TemplPartial(views.ContactForm(state), views.ContactPage(state),
//		handler.WithTarget("#contact-form"))
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partials: []TemplPatch{Patch(partial, opts...)}, full: full}
}

// TemplMulti sends several patches to datastar clients and full to everyone else.
func TemplMulti(full templ.Component, patches ...TemplPatch) Response {
	return templResponse{partials: patches, full: full}
}
