// Package validator provides declarative field validation.
//
// Each rule pairs a check with a ValidationError carrying a translation key,
// so the caller can render messages in the visitor's language:
//
//	err := validator.Apply(
//		validator.RequiredString("name", form.Name),
//		validator.MaxLenString("name", form.Name, 100),
//		validator.ValidEmail("email", form.Email),
//		validator.When(form.Interest != "", validator.InListString("interest", form.Interest, codes)),
//	)
//	for field, e := range validator.ExtractValidationErrors(err).ByField() {
//		msg := loc.Text(e.TranslationKey, e.TranslationArgs()...)
//	}
package validator
