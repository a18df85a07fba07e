package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/mrz1836/postmark"
)

// PostmarkTransport sends the same message contract through a Postmark template.
// The mapping is: TemplateID is the template alias, PublicKey the server token,
// ServiceID the message tag, Params the template model.
type PostmarkTransport struct {
	from    string
	to      string
	baseURL string
	client  *http.Client
}

// NewPostmarkTransport validates sender and recipient addresses.
func NewPostmarkTransport(cfg Config) (*PostmarkTransport, error) {
	if cfg.SenderEmail == "" || !validAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.RecipientEmail == "" || !validAddress(cfg.RecipientEmail) {
		return nil, fmt.Errorf("%w: RecipientEmail must be a valid email address", ErrInvalidConfig)
	}
	return &PostmarkTransport{
		from:    cfg.SenderEmail,
		to:      cfg.RecipientEmail,
		baseURL: cfg.PostmarkBaseURL,
		client:  cleanhttp.DefaultPooledClient(),
	}, nil
}

// Send implements Transport. The visitor's address becomes Reply-To so a
// plain reply reaches them.
func (p *PostmarkTransport) Send(ctx context.Context, msg Message) error {
	if err := msg.Credentials().Validate(); err != nil {
		return err
	}

	client := postmark.NewClient(msg.PublicKey, "")
	client.HTTPClient = p.client
	if p.baseURL != "" {
		client.BaseURL = p.baseURL
	}

	model := make(map[string]interface{}, len(msg.Params))
	for k, v := range msg.Params {
		model[k] = v
	}

	resp, err := client.SendTemplatedEmail(ctx, postmark.TemplatedEmail{
		TemplateAlias: msg.TemplateID,
		TemplateModel: model,
		From:          p.from,
		To:            p.to,
		ReplyTo:       msg.Params["from_email"],
		Tag:           msg.ServiceID,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			ErrRejected,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
