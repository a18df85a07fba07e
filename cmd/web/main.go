package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/karkencompany/website/handler"
	"github.com/karkencompany/website/modules/contact"
	"github.com/karkencompany/website/modules/site"
	"github.com/karkencompany/website/pkg/clientip"
	"github.com/karkencompany/website/pkg/config"
	"github.com/karkencompany/website/pkg/cookie"
	"github.com/karkencompany/website/pkg/email"
	"github.com/karkencompany/website/pkg/environment"
	"github.com/karkencompany/website/pkg/httpserver"
	"github.com/karkencompany/website/pkg/i18n"
	"github.com/karkencompany/website/pkg/logger"
	"github.com/karkencompany/website/pkg/ratelimiter"
	"github.com/karkencompany/website/pkg/redis"
	"github.com/karkencompany/website/pkg/requestid"
	"github.com/karkencompany/website/translations"
	"github.com/karkencompany/website/views"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"karken-website"`

	// I18nDir loads translations from disk instead of the embedded copy.
	I18nDir        string `env:"I18N_DIR"`
	RateLimitStore string `env:"RATE_LIMIT_STORE" envDefault:"memory"`
}

func main() {
	if err := config.LoadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	var app appConfig
	config.MustLoad(&app)
	env := environment.Parse(app.Env)

	log := logger.New(
		logger.WithEnvironment(env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), app, env, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, app appConfig, env environment.Environment, log *slog.Logger) error {
	var (
		httpCfg    httpserver.Config
		emailCfg   email.Config
		cookieCfg  cookie.Config
		contactCfg contact.Config
		limitCfg   ratelimiter.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&emailCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&contactCfg) },
		func() error { return config.Load(&limitCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	tr, err := newTranslator(ctx, app, env, log)
	if err != nil {
		return err
	}
	for _, issue := range tr.Parity(i18n.Lithuanian, i18n.English) {
		log.Warn("translation shape differs", slog.String("issue", issue.String()))
	}

	transport, err := email.NewTransport(emailCfg)
	if err != nil {
		return err
	}
	if !emailCfg.Credentials().Configured() {
		log.Warn("email credentials are not configured, contact form will report it to visitors",
			slog.String("provider", emailCfg.Provider))
	}

	cookies, err := newCookieManager(cookieCfg, env, log)
	if err != nil {
		return err
	}

	store, checks, closeStore, err := newRateLimitStore(ctx, app.RateLimitStore, log)
	if err != nil {
		return err
	}
	defer closeStore()
	bucket, err := ratelimiter.NewBucket(store, limitCfg)
	if err != nil {
		return err
	}

	errorHandler := handler.NewErrorHandler(log, views.ErrorHandlerConfig())

	contactSvc := contact.NewService(contactCfg, transport, emailCfg.Credentials(), cookies, views.ContactViews(),
		contact.WithRateLimiter(bucket),
		contact.WithServiceLogger(log),
		contact.WithErrorHandler(errorHandler),
	)
	siteSvc := site.NewService(views.SiteViews(), cookies,
		site.WithLogger(log),
		site.WithErrorHandler(errorHandler),
	)

	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return fmt.Errorf("compression: %w", err)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.CleanPath,
		middleware.StripSlashes,
		requestid.Middleware(),
		clientip.Middleware(),
		environment.Middleware(env),
		requestLogger(log),
		compress,
		i18n.Middleware(tr, i18n.DefaultLangExtractor()),
	)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks...))

	r.Mount("/contact", contactSvc.Handle())
	siteSvc.Register(r)

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

func newTranslator(ctx context.Context, app appConfig, env environment.Environment, log *slog.Logger) (*i18n.Translator, error) {
	var adapter i18n.TranslationAdapter = i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), translations.FS, ".")
	if app.I18nDir != "" {
		adapter = i18n.NewDirectoryAdapter(app.I18nDir)
	}
	return i18n.NewTranslator(ctx, adapter,
		i18n.WithLogger(log.With(logger.Component("i18n"))),
		i18n.WithMissingTranslationsLogging(!env.IsProduction()),
	)
}

// newCookieManager falls back to a per-process secret outside production,
// so flash cookies work without setup but do not survive restarts.
func newCookieManager(cfg cookie.Config, env environment.Environment, log *slog.Logger) (*cookie.Manager, error) {
	m, err := cookie.NewFromConfig(cfg)
	if err == nil || !errors.Is(err, cookie.ErrNoSecret) || env.IsProduction() {
		return m, err
	}
	log.Warn("COOKIE_SECRETS is empty, using an ephemeral secret")
	cfg.Secrets = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	return cookie.NewFromConfig(cfg)
}

func newRateLimitStore(ctx context.Context, kind string, log *slog.Logger) (ratelimiter.Store, []httpserver.Check, func(), error) {
	switch strings.ToLower(kind) {
	case "", "memory":
		store := ratelimiter.NewMemoryStore()
		return store, nil, store.Close, nil
	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("rate limiter uses redis")
		closeClient := func() {
			if err := client.Close(); err != nil {
				log.Warn("closing redis client", logger.Error(err))
			}
		}
		return ratelimiter.NewRedisStore(client), []httpserver.Check{redis.Healthcheck(client)}, closeClient, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown RATE_LIMIT_STORE %q", kind)
	}
}

// requestLogger logs one line per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.DebugContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
