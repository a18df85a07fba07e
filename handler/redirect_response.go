package handler

import (
	"net/http"
	"net/url"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url  string
	code int
	back bool
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	target := rr.url
	if rr.back {
		if ref := r.Header.Get("Referer"); ref != "" && sameHost(ref, r) {
			target = ref
		}
	}
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(target)
	}
	http.Redirect(w, r, target, rr.code)
	return nil
}

// Redirect answers 303 See Other, or a client-side redirect for datastar.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectBack returns to the Referer when it is on the same host,
// otherwise to fallback.
func RedirectBack(fallback string) Response {
	return redirectResponse{url: fallback, code: http.StatusSeeOther, back: true}
}

func sameHost(raw string, r *http.Request) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Host == "" {
		// Reject scheme-relative and non-path references.
		return u.Scheme == "" && len(u.Path) > 0 && u.Path[0] == '/'
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host == r.Host
}
