// Package app wires configuration, storage and services into the HTTP
// application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/internal/db/repository"
	"github.com/dmitrymomot/leadhub/internal/metrics"
	"github.com/dmitrymomot/leadhub/pkg/cookie"
	"github.com/dmitrymomot/leadhub/pkg/csrf"
	"github.com/dmitrymomot/leadhub/pkg/httpserver"
	"github.com/dmitrymomot/leadhub/pkg/pg"
	"github.com/dmitrymomot/leadhub/pkg/ratelimiter"
	"github.com/dmitrymomot/leadhub/pkg/redis"
	"github.com/dmitrymomot/leadhub/pkg/session"
	"github.com/dmitrymomot/leadhub/svc/admin"
	"github.com/dmitrymomot/leadhub/svc/auth"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

var ErrInvalidBackend = errors.New("invalid backend")

// Dependencies are the external connections the application runs on. Redis
// is required only when a redis backend is configured.
type Dependencies struct {
	Pool  *pgxpool.Pool
	Redis *goredis.Client
}

type App struct {
	cfg     Config
	log     *slog.Logger
	deps    Dependencies
	metrics *metrics.Metrics
	handler http.Handler
	closers []func()
}

// New connects to PostgreSQL and, when needed, Redis, then builds the app.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	deps := Dependencies{Pool: pool}

	if cfg.usesRedis() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, err
		}
		deps.Redis = client
	}

	a, err := NewWithDependencies(cfg, log, deps)
	if err != nil {
		pool.Close()
		if deps.Redis != nil {
			_ = deps.Redis.Close()
		}
		return nil, err
	}
	a.closers = append(a.closers, pool.Close, func() {
		if deps.Redis != nil {
			_ = deps.Redis.Close()
		}
	})
	return a, nil
}

// NewWithDependencies builds the app on existing connections. Closing the
// connections stays with the caller.
func NewWithDependencies(cfg Config, log *slog.Logger, deps Dependencies) (*App, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := &App{cfg: cfg, log: log, deps: deps, metrics: metrics.New()}
	if err := a.build(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build() error {
	cfg, log, deps := a.cfg, a.log, a.deps

	jar, err := cookie.New([]string{cfg.Session.Secret}, cookie.WithSecure(cfg.Session.SecureCookies))
	if err != nil {
		return fmt.Errorf("session cookie: %w", err)
	}

	sessionStore, csrfStore, err := a.stateStores()
	if err != nil {
		return err
	}
	sessions := session.NewManager(sessionStore, jar, cfg.Session, session.WithLogger(log))
	csrfMgr := csrf.NewManager(csrfStore, csrf.WithTTL(sessions.TTL()), csrf.WithLogger(log))

	limiterStore, err := a.limiterStore()
	if err != nil {
		return err
	}
	inquiryLimiter, err := ratelimiter.New(limiterStore,
		ratelimiter.WithNamespace("inquiry"),
		ratelimiter.WithConfig(cfg.RateLimit),
		ratelimiter.WithLogger(log),
		ratelimiter.WithObserver(a.metrics.RateLimitDecision),
	)
	if err != nil {
		return err
	}
	requestOpts := []ratelimiter.Option{
		ratelimiter.WithNamespace("request"),
		ratelimiter.WithConfig(cfg.RateLimit),
		ratelimiter.WithLogger(log),
	}
	if cfg.InquiryIPLimit > 0 {
		requestOpts = append(requestOpts, ratelimiter.WithMaxAttempts(cfg.InquiryIPLimit))
	}
	requestLimiter, err := ratelimiter.New(limiterStore, requestOpts...)
	if err != nil {
		return err
	}

	var db repository.DB
	if deps.Pool != nil {
		db = deps.Pool
	}

	authOpts := []auth.Option{auth.WithLogger(log)}
	if cfg.BcryptCost > 0 {
		authOpts = append(authOpts, auth.WithBcryptCost(cfg.BcryptCost))
	}
	services := services{
		auth:    auth.NewService(repository.NewAccounts(db), authOpts...),
		catalog: catalog.NewService(repository.NewCatalog(db), catalog.WithLogger(log)),
		leads: lead.NewService(repository.NewLeads(db), inquiryLimiter,
			lead.WithLogger(log),
			lead.WithObserver(a.metrics.InquirySubmitted),
		),
		admin: admin.NewService(repository.NewAdmin(db), admin.WithLogger(log)),
	}

	services.auth.OnStateChange(func(_ context.Context, e auth.Event) {
		a.metrics.AuthEvent(string(e.Type))
	})

	errorHandler := handler.NewErrorHandler(log, errorMappings()...)
	a.handler = a.routes(services, sessions, csrfMgr, requestLimiter, errorHandler)
	return nil
}

func (a *App) stateStores() (session.Store, csrf.Store, error) {
	switch a.cfg.StateBackend {
	case BackendMemory, "":
		sessions := session.NewMemoryStore(a.cfg.Session.CleanupInterval)
		a.closers = append(a.closers, sessions.Close)
		return sessions, csrf.NewMemoryStore(), nil
	case BackendRedis:
		if a.deps.Redis == nil {
			return nil, nil, fmt.Errorf("%w: redis state backend without redis client", ErrInvalidBackend)
		}
		return session.NewRedisStore(a.deps.Redis, "session"), csrf.NewRedisStore(a.deps.Redis, "csrf"), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidBackend, a.cfg.StateBackend)
	}
}

func (a *App) limiterStore() (ratelimiter.Store, error) {
	switch a.cfg.RateLimit.Backend {
	case BackendMemory, "":
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(a.cfg.RateLimit.CleanupInterval))
		a.closers = append(a.closers, store.Close)
		return store, nil
	case BackendRedis:
		if a.deps.Redis == nil {
			return nil, fmt.Errorf("%w: redis rate limit backend without redis client", ErrInvalidBackend)
		}
		return ratelimiter.NewRedisStore(a.deps.Redis, ratelimiter.WithKeyPrefix(a.cfg.RateLimit.RedisPrefix)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBackend, a.cfg.RateLimit.Backend)
	}
}

// Handler is the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP until ctx is cancelled or the process is signalled.
func (a *App) Run(ctx context.Context) error {
	return httpserver.New(a.cfg.HTTP, httpserver.WithLogger(a.log)).Run(ctx, a.handler)
}

// Close stops background workers and closes connections opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
