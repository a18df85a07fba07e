package email

import (
	"context"
	"maps"
	"strings"
)

// Placeholder credential values shipped in example configuration.
const (
	PlaceholderServiceID  = "YOUR_SERVICE_ID"
	PlaceholderTemplateID = "YOUR_TEMPLATE_ID"
	PlaceholderPublicKey  = "YOUR_PUBLIC_KEY"
)

// Transport delivers a message through a third-party mail service.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one templated send: which service and template to use, the key
// authorizing it and the flat template parameters.
type Message struct {
	ServiceID  string            `json:"service_id"`
	TemplateID string            `json:"template_id"`
	PublicKey  string            `json:"-"`
	Params     map[string]string `json:"template_params"`
}

// Credentials identify the provider account and template.
type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Configured reports whether every value is set and none is a placeholder.
func (c Credentials) Configured() bool {
	return isSet(c.ServiceID, PlaceholderServiceID) &&
		isSet(c.TemplateID, PlaceholderTemplateID) &&
		isSet(c.PublicKey, PlaceholderPublicKey)
}

// Validate returns ErrNotConfigured unless Configured.
func (c Credentials) Validate() error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return nil
}

// Message builds a send for these credentials. Params are copied.
func (c Credentials) Message(params map[string]string) Message {
	return Message{
		ServiceID:  c.ServiceID,
		TemplateID: c.TemplateID,
		PublicKey:  c.PublicKey,
		Params:     maps.Clone(params),
	}
}

// Credentials returns the credentials carried by the message.
func (m Message) Credentials() Credentials {
	return Credentials{ServiceID: m.ServiceID, TemplateID: m.TemplateID, PublicKey: m.PublicKey}
}

func isSet(v, placeholder string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != placeholder
}
