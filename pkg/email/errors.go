package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email: failed to send")
	ErrInvalidConfig     = errors.New("email: invalid config")

	// ErrNotConfigured means credentials are empty or still placeholders.
	// No network call is made when it is returned.
	ErrNotConfigured = errors.New("email: transport not configured")

	// ErrRejected means the provider answered but refused the message.
	ErrRejected = errors.New("email: message rejected by provider")
)
