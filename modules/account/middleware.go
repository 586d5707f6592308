package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/handler"
	"github.com/dmitrymomot/leadhub/pkg/logger"
	"github.com/dmitrymomot/leadhub/pkg/session"
	"github.com/dmitrymomot/leadhub/svc/auth"
)

// IdentityLoader resolves a signed-in user.
type IdentityLoader interface {
	Identity(ctx context.Context, userID uuid.UUID) (*auth.Identity, error)
}

// LoadIdentity puts the identity of the session user into the request
// context. Anonymous sessions and deleted users pass through without one.
// It must run after session.Manager.Middleware.
func LoadIdentity(loader IdentityLoader, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := session.UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			id, err := loader.Identity(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, auth.ErrUserNotFound) {
					log.ErrorContext(r.Context(), "failed to load identity",
						logger.Component("account"),
						logger.UserID(userID),
						logger.Error(err),
					)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireIdentity rejects requests without a loaded identity with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) == nil {
			_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non-admin identities with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IdentityFromContext(r.Context()).IsAdmin {
			_ = handler.JSONError(handler.ErrForbidden).Render(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
