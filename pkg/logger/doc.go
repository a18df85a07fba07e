// Package logger builds *slog.Logger instances with per-environment defaults
// and context-driven attributes.
//
// Development output goes through github.com/lmittmann/tint for colorized
// console lines; staging and production emit JSON. ContextExtractor callbacks
// add request-scoped attributes (request id, environment) to every record
// logged with a context:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "karken-web"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "contact form sent", logger.Component("contact"))
package logger
