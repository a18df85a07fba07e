package contact

import "errors"

var (
	// ErrLocked is returned when the form is edited while a submission is in
	// flight or after it has been sent.
	ErrLocked       = errors.New("contact: form is locked")
	ErrUnknownField = errors.New("contact: unknown field")
)
