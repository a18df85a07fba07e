// Package views renders the site pages as templ components.
//
// Markup lives in embedded html/template files. Every component reads the
// request Localizer from the render context, so the same component renders
// Lithuanian or English depending on the request.
package views

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/karkencompany/website/handler"
	"github.com/karkencompany/website/modules/contact"
	"github.com/karkencompany/website/modules/site"
	"github.com/karkencompany/website/pkg/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("views").Funcs(template.FuncMap{
	"seq":     func(v ...string) []string { return v },
	"lines":   lines,
	"fieldOf": fieldOf,
}).ParseFS(templateFS, "templates/*.html"))

// now is replaced in tests.
var now = time.Now

type navItem struct {
	Path string
	Key  string
}

var navItems = []navItem{
	{"/", "nav.home"},
	{"/about", "nav.about"},
	{"/services", "nav.services"},
	{"/products", "nav.products"},
	{"/compliance", "nav.compliance"},
	{"/logistics", "nav.logistics"},
	{"/contact", "nav.contact"},
}

type data struct {
	L       *i18n.Localizer
	Path    string
	Year    int
	Content template.HTML

	Page    string
	Form    contact.FormParams
	Notice  *contact.Notice
	Error   handler.ErrorPageParams
	Toast   toast
	Options []string
}

type toast struct {
	Kind      string
	TitleKey  string
	TextKey   string
	RequestID string
}

// T translates key in the request language.
func (d data) T(key string, args ...any) string { return d.L.Text(key, args...) }

func (d data) Lang() string { return d.L.Language().String() }

// OtherLang is the language offered by the switch in the header.
func (d data) OtherLang() string {
	if d.L.Language() == i18n.English {
		return i18n.Lithuanian.String()
	}
	return i18n.English.String()
}

func (d data) Nav() []navItem { return navItems }

// FieldError returns the translated first error of field, or "".
func (d data) FieldError(field string) string {
	e, ok := d.Form.Errors.First(field)
	if !ok {
		return ""
	}
	return d.L.Text(e.TranslationKey, e.TranslationArgs()...)
}

func (d data) Value(field string) string { return d.Form.Values.Get(field) }

func (d data) Locked() bool {
	return d.Form.State == contact.StateSubmitted || d.Form.State == contact.StateSubmitting
}

var maxLength = map[string]int{
	contact.FieldName:    contact.MaxNameLength,
	contact.FieldCompany: contact.MaxCompanyLength,
	contact.FieldEmail:   contact.MaxEmailLength,
	contact.FieldPhone:   contact.MaxPhoneLength,
}

type input struct {
	Name        string
	Type        string
	Label       string
	Placeholder string
	Optional    string
	Value       string
	Error       string
	Max         int
	Required    bool
}

func fieldOf(d data, name, typ string, required bool) input {
	return input{
		Name:        name,
		Type:        typ,
		Label:       d.T("contact.form." + name),
		Placeholder: d.T("contact.form.placeholders." + name),
		Optional:    d.T("contact.form.optional"),
		Value:       d.Value(name),
		Error:       d.FieldError(name),
		Max:         maxLength[name],
		Required:    required,
	}
}

// lines splits multi-line copy into non-empty lines.
func lines(s string) []string {
	var out []string
	for l := range strings.SplitSeq(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// component executes the named template. With layout set, the output is
// wrapped into the page layout.
func component(name string, d data, layout bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		d.L = i18n.LocalizerFromContext(ctx)
		d.Year = now().Year()
		if !layout {
			return templates.ExecuteTemplate(w, name, d)
		}

		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, name, d); err != nil {
			return err
		}
		d.Content = template.HTML(buf.String())
		return templates.ExecuteTemplate(w, "layout", d)
	})
}

// Page renders a content page.
func Page(p site.PageParams) templ.Component {
	name := "page-" + string(p.Page)
	switch p.Page {
	case site.PagePrivacy, site.PageTerms, site.PageCookies:
		name = "page-legal"
	}
	return component(name, data{Page: string(p.Page), Path: p.Path}, true)
}

func contactData(f contact.FormParams) data {
	return data{
		Page:    "contact",
		Path:    "/contact",
		Form:    f,
		Options: contact.Interests,
	}
}

func ContactPage(p contact.PageParams) templ.Component {
	d := contactData(p.Form)
	d.Notice = p.Notice
	if p.Notice != nil {
		d.Toast = toast{Kind: string(p.Notice.Kind), TitleKey: p.Notice.TitleKey, TextKey: p.Notice.TextKey}
	}
	return component("page-contact", d, true)
}

// ContactForm renders the #contact-form element patched by datastar.
func ContactForm(p contact.FormParams) templ.Component {
	return component("contact-form", contactData(p), false)
}

func ContactToast(p contact.ToastParams) templ.Component {
	return component("toast", data{Toast: toast{
		Kind:     string(p.Notice.Kind),
		TitleKey: p.Notice.TitleKey,
		TextKey:  p.Notice.TextKey,
	}}, false)
}

func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return component("page-error", data{Page: "error", Path: p.RetryURL, Error: p}, true)
}

func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return component("toast", data{Toast: toast{
		Kind:      p.Type,
		TitleKey:  p.Key + ".title",
		TextKey:   p.Key + ".text",
		RequestID: p.RequestID,
	}}, false)
}

// ContactViews wires the contact module to these templates.
func ContactViews() *contact.Views {
	return &contact.Views{Page: ContactPage, Form: ContactForm, Toast: ContactToast}
}

func SiteViews() *site.Views {
	return &site.Views{Page: Page}
}

// ErrorHandlerConfig renders errors with the site layout.
func ErrorHandlerConfig() handler.ErrorHandlerConfig {
	return handler.ErrorHandlerConfig{
		ErrorPage:   ErrorPage,
		ErrorToast:  ErrorToast,
		ToastTarget: contact.ToastTarget,
	}
}
