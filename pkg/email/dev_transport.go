package email

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// DevTransport implements Transport for local development.
// It saves each message as a JSON record plus an HTML preview instead of
// calling a provider. Credentials are still checked so the "not configured"
// path behaves as in production.
type DevTransport struct {
	dir string
	now func() time.Time
}

// NewDevTransport creates a development transport writing into dir.
// The directory will be created if it doesn't exist.
func NewDevTransport(dir string) *DevTransport {
	return &DevTransport{dir: dir, now: time.Now}
}

type devRecord struct {
	Timestamp  string            `json:"timestamp"`
	ServiceID  string            `json:"service_id"`
	TemplateID string            `json:"template_id"`
	Params     map[string]string `json:"template_params"`
}

// Send implements Transport.
func (d *DevTransport) Send(ctx context.Context, msg Message) error {
	if err := msg.Credentials().Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", ErrFailedToSendEmail, err)
	}

	now := d.now()
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405.000"), sanitizeFilename(msg.Params["from_name"]))

	data, err := json.MarshalIndent(devRecord{
		Timestamp:  now.Format(time.RFC3339),
		ServiceID:  msg.ServiceID,
		TemplateID: msg.TemplateID,
		Params:     msg.Params,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %w", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %w", ErrFailedToSendEmail, err)
	}

	preview, err := Render(ctx, previewComponent(msg))
	if err != nil {
		return fmt.Errorf("%w: failed to render preview: %w", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(preview), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %w", ErrFailedToSendEmail, err)
	}

	return nil
}

// Render takes a templ.Component and renders it to a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// previewComponent lists the template params in a table, sorted by name.
func previewComponent(msg Message) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!doctype html><html><body><h1>")
		b.WriteString(html.EscapeString(msg.TemplateID))
		b.WriteString("</h1><table>")
		for _, k := range slices.Sorted(maps.Keys(msg.Params)) {
			fmt.Fprintf(&b, "<tr><th>%s</th><td>%s</td></tr>",
				html.EscapeString(k), html.EscapeString(msg.Params[k]))
		}
		b.WriteString("</table></body></html>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// sanitizeRegex matches characters that are not alphanumeric, dash, underscore, or dot
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe, lowercase filename fragment.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 64
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "message"
	}
	return strings.ToLower(s)
}
