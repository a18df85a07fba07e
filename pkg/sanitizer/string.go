package sanitizer

import (
	"strings"
	"unicode"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RemoveControlChars drops control and format characters (including
// zero-width and bidi overrides) but keeps newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, s)
}

// NormalizeNewlines converts CRLF and lone CR to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// SingleLine collapses every run of whitespace, line breaks included, into one
// space and trims the result. Values that end up in mail headers go through it.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeEmail trims the address and lowercases its domain.
// The local part is left alone since it may be case sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Text is the pipeline for single-line form input.
var Text = Compose(NormalizeNewlines, RemoveControlChars, SingleLine)

// Multiline is the pipeline for free text such as messages.
var Multiline = Compose(NormalizeNewlines, RemoveControlChars, Trim)
