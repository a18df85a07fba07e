// Package cookie writes plain, signed, encrypted and flash cookies.
//
// Each configured secret is expanded with HKDF-SHA256 into a signing key and an
// encryption key. The first secret is used for writing; all secrets are tried
// when reading, so a new secret can be prepended and the old one dropped once
// outstanding cookies have expired.
//
// Flash cookies carry a JSON value across one redirect and are deleted on read.
// The contact form uses them for its post/redirect/get acknowledgment:
//
//	_ = cookies.SetFlash(w, "contact", notice)
//	http.Redirect(w, r, "/contact", http.StatusSeeOther)
//
//	var n Notice
//	if err := cookies.GetFlash(w, r, "contact", &n); err == nil { ... }
package cookie
