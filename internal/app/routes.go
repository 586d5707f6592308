package app

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/modules/account"
	adminhttp "github.com/dmitrymomot/leadhub/modules/admin"
	"github.com/dmitrymomot/leadhub/modules/manufacturer"
	"github.com/dmitrymomot/leadhub/modules/marketplace"
	"github.com/dmitrymomot/leadhub/pkg/clientip"
	"github.com/dmitrymomot/leadhub/pkg/csrf"
	"github.com/dmitrymomot/leadhub/pkg/httpserver"
	"github.com/dmitrymomot/leadhub/pkg/pg"
	"github.com/dmitrymomot/leadhub/pkg/ratelimiter"
	"github.com/dmitrymomot/leadhub/pkg/redis"
	"github.com/dmitrymomot/leadhub/pkg/requestid"
	"github.com/dmitrymomot/leadhub/pkg/session"
	"github.com/dmitrymomot/leadhub/svc/admin"
	"github.com/dmitrymomot/leadhub/svc/auth"
	"github.com/dmitrymomot/leadhub/svc/catalog"
	"github.com/dmitrymomot/leadhub/svc/lead"
)

// ErrInvalidCSRFToken is the response body for rejected inquiry posts.
var ErrInvalidCSRFToken = handler.NewHTTPError(http.StatusForbidden, "invalid_csrf_token")

type services struct {
	auth    *auth.Service
	catalog *catalog.Service
	leads   *lead.Service
	admin   *admin.Service
}

func errorMappings() []handler.ErrorMapping {
	return slices.Concat(
		account.ErrorMappings,
		marketplace.ErrorMappings,
		manufacturer.ErrorMappings,
		adminhttp.ErrorMappings,
	)
}

func (a *App) routes(
	svc services,
	sessions *session.Manager,
	csrfMgr *csrf.Manager,
	requestLimiter *ratelimiter.Limiter,
	errorHandler handler.ErrorHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		middleware.Recoverer,
		a.metrics.Middleware,
	)

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(a.log, a.cfg.HealthTimeout, a.readinessChecks()))
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware, account.LoadIdentity(svc.auth, a.log))

		r.Mount("/auth", account.Router(account.RouterOptions{
			Password: account.NewPasswordService(svc.auth, sessions, errorHandler),
		}))

		r.With(account.RequireIdentity).
			Mount("/manufacturer", manufacturer.NewService(svc.catalog, svc.leads, errorHandler).Handle())

		r.With(account.RequireAdmin).
			Mount("/admin", adminhttp.NewService(svc.admin, errorHandler).Handle())

		r.Mount("/", marketplace.NewService(svc.catalog, svc.leads, csrfMgr, sessions,
			marketplace.WithErrorHandler(errorHandler),
			marketplace.WithRequestLimiter(requestLimiter),
			marketplace.WithCSRFOptions(csrf.WithFailureHandler(a.csrfFailure)),
		).Handle())
	})

	return r
}

func (a *App) csrfFailure(w http.ResponseWriter, r *http.Request) {
	a.metrics.CSRFFailure()
	a.log.WarnContext(r.Context(), "csrf validation failed",
		"path", r.URL.Path,
		"ip", clientip.GetIPFromContext(r.Context()),
	)
	_ = handler.JSONError(ErrInvalidCSRFToken).Render(w, r)
}

func (a *App) readinessChecks() map[string]httpserver.Check {
	checks := make(map[string]httpserver.Check, 2)
	if a.deps.Pool != nil {
		checks["postgres"] = pg.Healthcheck(a.deps.Pool)
	}
	if a.deps.Redis != nil {
		checks["redis"] = redis.Healthcheck(a.deps.Redis)
	}
	return checks
}
