package binder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Path binds `path:"name"` fields from chi route parameters.
// It reports ErrBinderNotApplicable outside a chi route.
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return ErrBinderNotApplicable
		}
		values := make(map[string][]string, len(rctx.URLParams.Keys))
		for i, k := range rctx.URLParams.Keys {
			if i < len(rctx.URLParams.Values) {
				values[k] = []string{rctx.URLParams.Values[i]}
			}
		}
		return bindToStruct(v, "path", values, ErrInvalidPath)
	}
}

