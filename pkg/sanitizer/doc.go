// Package sanitizer cleans user input before it is validated.
//
// The helpers are plain func(string) string values, so they chain with Apply
// and Compose:
//
//	name := sanitizer.Text(r.FormValue("name"))
//	email := sanitizer.Apply(r.FormValue("email"), sanitizer.Text, sanitizer.NormalizeEmail)
package sanitizer
