package contact

import (
	"slices"

	"github.com/karkencompany/website/pkg/sanitizer"
	"github.com/karkencompany/website/pkg/validator"
)

// Field names as submitted by the form and reported in validation errors.
const (
	FieldName     = "name"
	FieldCompany  = "company"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldInterest = "interest"
	FieldMessage  = "message"
)

const (
	MaxNameLength    = 100
	MaxCompanyLength = 100
	MaxEmailLength   = 255
	MaxPhoneLength   = 20
	MaxMessageLength = 2000
)

// Interests lists the accepted interest values in display order.
var Interests = []string{"catalog", "consultation", "partnership", "other"}

// Fields lists every form field in display order.
var Fields = []string{FieldName, FieldCompany, FieldEmail, FieldPhone, FieldInterest, FieldMessage}

// Form is a contact inquiry.
type Form struct {
	Name     string `form:"name"`
	Company  string `form:"company"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	Interest string `form:"interest"`
	Message  string `form:"message"`
}

// Get returns the value of field, or "" for an unknown field.
func (f Form) Get(field string) string {
	if p := f.ptr(field); p != nil {
		return *p
	}
	return ""
}

// Set updates field. It reports false for an unknown field.
func (f *Form) Set(field, value string) bool {
	p := f.ptr(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (f *Form) ptr(field string) *string {
	switch field {
	case FieldName:
		return &f.Name
	case FieldCompany:
		return &f.Company
	case FieldEmail:
		return &f.Email
	case FieldPhone:
		return &f.Phone
	case FieldInterest:
		return &f.Interest
	case FieldMessage:
		return &f.Message
	}
	return nil
}

// Sanitized returns a copy with whitespace trimmed and control characters
// removed. Only the message keeps line breaks.
func (f Form) Sanitized() Form {
	return Form{
		Name:     sanitizer.Text(f.Name),
		Company:  sanitizer.Text(f.Company),
		Email:    sanitizer.NormalizeEmail(sanitizer.Text(f.Email)),
		Phone:    sanitizer.Text(f.Phone),
		Interest: sanitizer.Text(f.Interest),
		Message:  sanitizer.Multiline(f.Message),
	}
}

// Validate returns validator.ValidationErrors for every failed rule.
// Call it on a sanitized form.
func (f Form) Validate() error {
	return validator.Apply(
		validator.RequiredString(FieldName, f.Name),
		validator.MaxLenString(FieldName, f.Name, MaxNameLength),

		validator.MaxLenString(FieldCompany, f.Company, MaxCompanyLength),

		validator.RequiredString(FieldEmail, f.Email),
		validator.When(f.Email != "", validator.ValidEmail(FieldEmail, f.Email)),
		validator.MaxLenString(FieldEmail, f.Email, MaxEmailLength),

		validator.MaxLenString(FieldPhone, f.Phone, MaxPhoneLength),

		validator.When(f.Interest != "", validator.InListString(FieldInterest, f.Interest, Interests)),

		validator.RequiredString(FieldMessage, f.Message),
		validator.MaxLenString(FieldMessage, f.Message, MaxMessageLength),
	)
}

func validInterest(v string) bool {
	return slices.Contains(Interests, v)
}
