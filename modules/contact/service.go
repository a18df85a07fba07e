package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/karkencompany/website/handler"
	"github.com/karkencompany/website/pkg/binder"
	"github.com/karkencompany/website/pkg/cookie"
	"github.com/karkencompany/website/pkg/email"
	"github.com/karkencompany/website/pkg/i18n"
	"github.com/karkencompany/website/pkg/logger"
	"github.com/karkencompany/website/pkg/ratelimiter"
	"github.com/karkencompany/website/pkg/validator"
)

// DOM targets patched by datastar responses.
const (
	FormTarget  = "#contact-form"
	ToastTarget = "#toasts"
)

// FormParams contains data for rendering the contact form.
type FormParams struct {
	Values Form
	Errors validator.ValidationErrors
	State  State
}

// PageParams contains data for rendering the contact page.
type PageParams struct {
	Form   FormParams
	Notice *Notice
}

type ToastParams struct {
	Notice Notice
}

// Views renders the contact page. Components read the request Localizer
// from the render context.
type Views struct {
	Page  func(PageParams) templ.Component
	Form  func(FormParams) templ.Component
	Toast func(ToastParams) templ.Component
}

type Service struct {
	cfg          Config
	transport    email.Transport
	creds        email.Credentials
	cookies      *cookie.Manager
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	limiter      *ratelimiter.Bucket
	log          *slog.Logger
}

type ServiceOption func(*Service)

// WithRateLimiter limits POST /contact per client IP.
func WithRateLimiter(b *ratelimiter.Bucket) ServiceOption {
	return func(s *Service) { s.limiter = b }
}

func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// NewService creates the contact page service. cookies may be nil, in which
// case plain form posts render the result page directly instead of
// redirecting.
func NewService(cfg Config, transport email.Transport, creds email.Credentials, cookies *cookie.Manager, views *Views, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:       cfg,
		transport: transport,
		creds:     creds,
		cookies:   cookies,
		views:     views,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})
	}
	if s.cfg.FlashKey == "" {
		s.cfg.FlashKey = "contact_notice"
	}
	return s
}

// Handle returns the router to mount at /contact.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.page,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	var limit []func(http.Handler) http.Handler
	if s.limiter != nil {
		limit = append(limit, ratelimiter.Middleware(s.limiter, ratelimiter.ByIP,
			ratelimiter.WithLimitedHandler(http.HandlerFunc(s.rateLimited)),
			ratelimiter.WithErrorHandler(func(_ http.ResponseWriter, r *http.Request, err error) {
				s.log.ErrorContext(r.Context(), "rate limiter unavailable", logger.Error(err))
			}),
			ratelimiter.WithFailOpen(),
		))
	}
	r.With(limit...).Post("/", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, Form](binder.Form()),
		handler.WithErrorHandler[handler.Context, Form](s.errorHandler),
	))

	return r
}

func (s *Service) page(ctx handler.Context, _ struct{}) handler.Response {
	params := PageParams{Form: FormParams{State: StateIdle}}

	if s.cookies != nil {
		var n Notice
		err := s.cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), s.cfg.FlashKey, &n)
		switch {
		case err == nil:
			params.Notice = &n
			if n.Kind == NoticeSuccess {
				params.Form.State = StateSubmitted
			}
		case !errors.Is(err, cookie.ErrCookieNotFound):
			s.log.WarnContext(ctx, "discarding unreadable flash", logger.Error(err))
		}
	}

	return handler.Templ(s.views.Page(params))
}

func (s *Service) submit(ctx handler.Context, req Form) handler.Response {
	c := NewController(s.transport, s.creds,
		WithLocalizer(ctx.Localizer()),
		WithTimeout(s.cfg.SendTimeout),
		WithLogger(s.log),
	)
	for _, field := range Fields {
		if err := c.SetField(ctx, field, req.Get(field)); err != nil {
			return handler.Error(err)
		}
	}

	state := c.Submit(ctx)
	formParams := FormParams{Values: c.Form(), Errors: c.Errors(), State: state}
	notice, _ := c.Notice()

	if handler.IsDataStar(ctx.Request()) {
		return handler.TemplMulti(
			s.views.Page(PageParams{Form: formParams, Notice: &notice}),
			handler.Patch(s.views.Form(formParams), handler.WithTarget(FormTarget)),
			handler.Patch(s.views.Toast(ToastParams{Notice: notice}),
				handler.WithTarget(ToastTarget), handler.WithPatchMode(handler.PatchAppend)),
		)
	}

	if state == StateSubmitted && s.cookies != nil {
		err := s.cookies.SetFlash(ctx.ResponseWriter(), s.cfg.FlashKey, notice)
		if err == nil {
			return handler.Redirect(ctx.Request().URL.Path)
		}
		s.log.WarnContext(ctx, "failed to set flash", logger.Error(err))
	}

	status := http.StatusOK
	if state == StateInvalid {
		status = http.StatusUnprocessableEntity
	}
	return handler.TemplStatus(status, s.views.Page(PageParams{Form: formParams, Notice: &notice}))
}

// rateLimited answers a rejected POST with the rate-limit notice.
// The visitor's input is kept in the re-rendered form.
func (s *Service) rateLimited(w http.ResponseWriter, r *http.Request) {
	notice := *noticeRateLimited
	l := i18n.LocalizerFromContext(r.Context())
	s.log.WarnContext(r.Context(), "contact form rate limited",
		logger.Event("contact.rate_limited"),
		slog.String("lang", l.Language().String()),
	)

	var resp handler.Response
	if handler.IsDataStar(r) {
		resp = handler.Templ(s.views.Toast(ToastParams{Notice: notice}),
			handler.WithTarget(ToastTarget), handler.WithPatchMode(handler.PatchAppend))
	} else {
		var values Form
		_ = binder.Form()(r, &values)
		resp = handler.TemplStatus(http.StatusTooManyRequests, s.views.Page(PageParams{
			Form:   FormParams{Values: values.Sanitized(), State: StateIdle},
			Notice: &notice,
		}))
	}
	if err := resp.Render(w, r); err != nil {
		s.errorHandler(handler.NewContext(w, r), err)
	}
}
