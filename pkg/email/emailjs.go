package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// maxErrorBody bounds how much of a rejection body ends up in the error.
const maxErrorBody = 512

// EmailJSClient sends templated messages through the EmailJS REST API.
type EmailJSClient struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
}

// EmailJSOption configures an EmailJSClient.
type EmailJSOption func(*EmailJSClient)

// WithEndpoint overrides the API endpoint.
func WithEndpoint(url string) EmailJSOption {
	return func(c *EmailJSClient) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithAccessToken sets the account private key sent as accessToken.
func WithAccessToken(token string) EmailJSOption {
	return func(c *EmailJSClient) {
		c.accessToken = strings.TrimSpace(token)
	}
}

// WithHTTPClient replaces the default pooled client.
func WithHTTPClient(client *http.Client) EmailJSOption {
	return func(c *EmailJSClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewEmailJSClient creates a client with a private, pooled HTTP client.
// Timeouts are left to the caller's context.
func NewEmailJSClient(opts ...EmailJSOption) *EmailJSClient {
	c := &EmailJSClient{
		endpoint:   DefaultEmailJSEndpoint,
		httpClient: cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

// Send implements Transport.
func (c *EmailJSClient) Send(ctx context.Context, msg Message) error {
	if err := msg.Credentials().Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      msg.ServiceID,
		TemplateID:     msg.TemplateID,
		UserID:         msg.PublicKey,
		TemplateParams: msg.Params,
		AccessToken:    c.accessToken,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return errors.Join(
		ErrFailedToSendEmail,
		ErrRejected,
		fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt))),
	)
}
