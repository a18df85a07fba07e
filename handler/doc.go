// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request struct filled by binders,
// and returns a Response. Responses know how to answer both plain browser
// requests and datastar actions: Templ and TemplPartial render a page for the
// former and SSE element patches for the latter, Redirect turns into a
// client-side redirect for datastar.
//
//	type langRequest struct {
//		Code string `path:"code"`
//	}
//
//	func switchLanguage(ctx handler.Context, req langRequest) handler.Response {
//		...
//		return handler.RedirectBack("/")
//	}
//
//	r.Get("/lang/{code}", handler.Wrap(switchLanguage,
//		handler.WithBinders[handler.Context, langRequest](binder.Path()),
//		handler.WithErrorHandler[handler.Context, langRequest](errorHandler),
//	))
//
// Errors returned by binders or by Render go to the ErrorHandler. The one
// built by NewErrorHandler classifies HTTPError, validation and binder
// errors into a status code and a translation key, logs them with the
// request id and renders an error page or a toast.
package handler
