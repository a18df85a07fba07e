// Package email delivers templated messages through a third-party mail service.
//
// A Message carries a service id, a template id, an authorizing key and flat
// string parameters. Three Transport implementations exist:
//
//   - EmailJSClient posts to the EmailJS REST API
//   - PostmarkTransport sends a Postmark templated email
//   - DevTransport writes JSON and an HTML preview to a local directory
//
// NewTransport selects one from Config.Provider:
//
//	cfg, _ := config.Load[email.Config]()
//	tr, err := email.NewTransport(cfg)
//	err = tr.Send(ctx, cfg.Credentials().Message(map[string]string{"from_name": "Jonas"}))
//
// Every transport returns ErrNotConfigured without any I/O when credentials are
// empty or still the YOUR_* placeholders. Provider refusals wrap ErrRejected;
// all delivery failures wrap ErrFailedToSendEmail.
package email
