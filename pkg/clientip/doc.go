// Package clientip resolves the originating client address of an HTTP request.
//
// Proxy headers are consulted in order (Cloudflare, X-Forwarded-For, X-Real-IP)
// before falling back to RemoteAddr. Every candidate is parsed and normalized,
// so malformed or injected values are skipped rather than trusted verbatim.
// The result keys per-client rate limits and appears in logs as client_ip.
package clientip
