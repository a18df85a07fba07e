package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/karkencompany/website/pkg/binder"
	"github.com/karkencompany/website/pkg/logger"
	"github.com/karkencompany/website/pkg/requestid"
	"github.com/karkencompany/website/pkg/validator"
)

// ErrorPageParams feeds the full error page.
type ErrorPageParams struct {
	StatusCode int
	Key        string
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast shown to datastar clients.
type ErrorToastParams struct {
	Key       string
	Type      string // "warning" or "error"
	RequestID string
}

type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string // default "#toasts"
	ToastMode   TemplOption
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Key        string
	Type       string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{StatusCode: ErrInternalServerError.Code, Key: ErrInternalServerError.Key}

	var httpErr HTTPError
	var formErr ValidationError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode, info.Key = httpErr.Code, httpErr.Key
	case errors.As(err, &formErr), validator.IsValidationError(err),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath),
		errors.Is(err, binder.ErrMissingContentType):
		info.StatusCode, info.Key = ErrBadRequest.Code, ErrBadRequest.Key
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode, info.Key = http.StatusUnsupportedMediaType, ErrBadRequest.Key
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	} else {
		info.Type, info.LogLevel = "error", slog.LevelError
	}
	return info
}

// NewErrorHandler renders errors as a page for regular requests and as a
// toast for datastar requests. Every error is logged with the request id.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	if cfg.ToastMode == nil {
		cfg.ToastMode = WithPatchMode(PatchAppend)
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		id := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
		)

		if IsDataStar(r) && cfg.ErrorToast != nil {
			resp := Templ(cfg.ErrorToast(ErrorToastParams{Key: info.Key, Type: info.Type, RequestID: id}),
				WithTarget(cfg.ToastTarget), cfg.ToastMode)
			if rerr := resp.Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, http.StatusText(info.StatusCode), info.StatusCode)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{
			StatusCode: info.StatusCode,
			Key:        info.Key,
			RequestID:  id,
			RetryURL:   r.URL.Path,
		})
		if rerr := TemplStatus(info.StatusCode, page).Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(rerr))
		}
	}
}
