package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karkencompany/website/pkg/sanitizer"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim", "  Jonas  ", "Jonas"},
		{"collapse newlines", "UAB\r\nKarken\n\nCompany", "UAB Karken Company"},
		{"control chars", "Jo\x00nas\x1b", "Jonas"},
		{"zero width", "Jo\u200bnas", "Jonas"},
		{"tabs", "a\t\tb", "a b"},
		{"diacritics kept", " Šarūnas Žemaitis ", "Šarūnas Žemaitis"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.Text(tt.in))
		})
	}
}

func TestMultiline(t *testing.T) {
	t.Parallel()

	in := "\n  Sveiki,\r\n\r\nnorime katalogo.\x07\u202e  \n"
	assert.Equal(t, "Sveiki,\n\nnorime katalogo.", sanitizer.Multiline(in))
	assert.Equal(t, "a\tb", sanitizer.Multiline("a\tb"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jonas@imone.lt", sanitizer.NormalizeEmail("  Jonas@IMONE.LT "))
	assert.Equal(t, "no-at-sign", sanitizer.NormalizeEmail("no-at-sign"))
	assert.Equal(t, "j@x.lt", sanitizer.Apply(" j@X.lt\n", sanitizer.Text, sanitizer.NormalizeEmail))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	shout := sanitizer.Compose(strings.TrimSpace, strings.ToUpper)
	assert.Equal(t, "LABAS", shout("  labas "))
	assert.Equal(t, "x", sanitizer.Apply("x"))
}
