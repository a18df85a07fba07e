package site

import (
	"log/slog"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/karkencompany/website/handler"
	"github.com/karkencompany/website/pkg/binder"
	"github.com/karkencompany/website/pkg/cookie"
	"github.com/karkencompany/website/pkg/i18n"
	"github.com/karkencompany/website/pkg/logger"
)

// Page identifies a content page.
type Page string

const (
	PageHome       Page = "home"
	PageAbout      Page = "about"
	PageServices   Page = "services"
	PageProducts   Page = "products"
	PageCompliance Page = "compliance"
	PageLogistics  Page = "logistics"
	PagePrivacy    Page = "privacy"
	PageTerms      Page = "terms"
	PageCookies    Page = "cookies"
)

// Routes maps URL paths to pages.
var Routes = map[string]Page{
	"/":           PageHome,
	"/about":      PageAbout,
	"/services":   PageServices,
	"/products":   PageProducts,
	"/compliance": PageCompliance,
	"/logistics":  PageLogistics,
	"/privacy":    PagePrivacy,
	"/terms":      PageTerms,
	"/cookies":    PageCookies,
}

// LangCookieMaxAge keeps the language choice for a year.
const LangCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

type PageParams struct {
	Page Page
	Path string
}

type Views struct {
	Page func(PageParams) templ.Component
}

type Service struct {
	views        *Views
	cookies      *cookie.Manager
	cookieName   string
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithLangCookie overrides the name of the language cookie. It must match
// the name read by the i18n extractor.
func WithLangCookie(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.cookieName = name
		}
	}
}

func NewService(views *Views, cookies *cookie.Manager, opts ...Option) *Service {
	s := &Service{
		views:      views,
		cookies:    cookies,
		cookieName: i18n.DefaultCookieName,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})
	}
	return s
}

// Register adds the content pages, the language switch and the not found
// handler to r.
func (s *Service) Register(r chi.Router) {
	for path, page := range Routes {
		r.Get(path, handler.Wrap(s.page(page),
			handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
		))
	}

	r.Get("/lang/{code}", handler.Wrap(s.switchLanguage,
		handler.WithBinders[handler.Context, LangRequest](binder.Path(), binder.Query()),
		handler.WithErrorHandler[handler.Context, LangRequest](s.errorHandler),
	))

	r.NotFound(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler)))
}

func (s *Service) page(p Page) handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Templ(s.views.Page(PageParams{Page: p, Path: ctx.Request().URL.Path}))
	}
}

type LangRequest struct {
	Code     string `path:"code"`
	Redirect string `query:"redirect"`
}

// switchLanguage stores the chosen language and returns to the page the
// visitor came from. Unsupported codes leave the language unchanged.
func (s *Service) switchLanguage(ctx handler.Context, req LangRequest) handler.Response {
	lang, ok := i18n.ParseLanguage(req.Code)
	ctx.Localizer().SetLanguage(lang)
	if ok && s.cookies != nil {
		s.cookies.Set(ctx.ResponseWriter(), s.cookieName, lang.String(), cookie.WithMaxAge(LangCookieMaxAge))
	}
	if !ok {
		s.log.WarnContext(ctx, "unsupported language requested", slog.String("code", req.Code))
	}

	fallback := "/"
	if _, known := Routes[req.Redirect]; known || req.Redirect == "/contact" {
		fallback = req.Redirect
	}
	return handler.RedirectBack(fallback)
}
