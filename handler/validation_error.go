package handler

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError maps field names to translation keys.
type ValidationError url.Values

func NewValidationError() ValidationError {
	return make(ValidationError)
}

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for field, keys := range e {
		if len(keys) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, keys[0]))
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, key string) { url.Values(e).Add(field, key) }
func (e ValidationError) Get(field string) string { return url.Values(e).Get(field) }
func (e ValidationError) Has(field string) bool   { return len(e[field]) > 0 }
func (e ValidationError) IsEmpty() bool           { return len(e) == 0 }
