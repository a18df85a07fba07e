package email

import (
	"fmt"
	"net/mail"
	"strings"
)

// Provider names accepted by EMAIL_PROVIDER.
const (
	ProviderEmailJS  = "emailjs"
	ProviderPostmark = "postmark"
	ProviderDev      = "dev"
)

// Config holds email transport configuration.
// The credential defaults are placeholders, so an unconfigured deployment
// reports "not configured" instead of attempting a send. The dev provider
// replaces placeholders with local values, see Credentials.
type Config struct {
	Provider   string `env:"EMAIL_PROVIDER" envDefault:"emailjs"`
	ServiceID  string `env:"EMAIL_SERVICE_ID" envDefault:"YOUR_SERVICE_ID"`
	TemplateID string `env:"EMAIL_TEMPLATE_ID" envDefault:"YOUR_TEMPLATE_ID"`
	PublicKey  string `env:"EMAIL_PUBLIC_KEY" envDefault:"YOUR_PUBLIC_KEY"`

	// EmailJS only. The private key is required when the account enforces it
	// for non-browser API calls.
	EmailJSPrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	EmailJSEndpoint   string `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`

	// Postmark only.
	PostmarkBaseURL string `env:"POSTMARK_BASE_URL"`
	SenderEmail     string `env:"SENDER_EMAIL" envDefault:"hello@karkencompany.lt"`
	RecipientEmail  string `env:"CONTACT_RECIPIENT_EMAIL" envDefault:"hello@karkencompany.lt"`

	// Dev only.
	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// Local credentials used by the dev provider for unset values.
const (
	DevServiceID  = "dev"
	DevTemplateID = "contact"
	DevPublicKey  = "dev"
)

// Credentials returns the service/template/key triple from the config.
// With the dev provider, blank or placeholder values become the Dev*
// constants so submissions reach the DevTransport without extra setup.
func (c Config) Credentials() Credentials {
	creds := Credentials{ServiceID: c.ServiceID, TemplateID: c.TemplateID, PublicKey: c.PublicKey}
	if normalizeProvider(c.Provider) != ProviderDev {
		return creds
	}
	if !isSet(creds.ServiceID, PlaceholderServiceID) {
		creds.ServiceID = DevServiceID
	}
	if !isSet(creds.TemplateID, PlaceholderTemplateID) {
		creds.TemplateID = DevTemplateID
	}
	if !isSet(creds.PublicKey, PlaceholderPublicKey) {
		creds.PublicKey = DevPublicKey
	}
	return creds
}

func normalizeProvider(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

// NewTransport picks the implementation named by Provider.
// Missing credentials are not an error here; the transport reports
// ErrNotConfigured at send time.
func NewTransport(cfg Config) (Transport, error) {
	switch normalizeProvider(cfg.Provider) {
	case "", ProviderEmailJS:
		opts := []EmailJSOption{WithAccessToken(cfg.EmailJSPrivateKey)}
		if cfg.EmailJSEndpoint != "" {
			opts = append(opts, WithEndpoint(cfg.EmailJSEndpoint))
		}
		return NewEmailJSClient(opts...), nil
	case ProviderPostmark:
		return NewPostmarkTransport(cfg)
	case ProviderDev:
		return NewDevTransport(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

func validAddress(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}
