package csrf

import (
	"net/http"
)

// SessionIDFunc extracts the session identifier the token is bound to.
type SessionIDFunc func(r *http.Request) string

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onFailure func(w http.ResponseWriter, r *http.Request)
}

// WithFailureHandler replaces the default 403 response.
func WithFailureHandler(fn func(w http.ResponseWriter, r *http.Request)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onFailure = fn
		}
	}
}

// Middleware rejects unsafe requests whose token does not match the session slot.
// GET, HEAD, OPTIONS and TRACE pass through.
func Middleware(m *Manager, sessionID SessionIDFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if sessionID == nil {
		panic("csrf.Middleware: sessionID func is required")
	}

	cfg := &middlewareConfig{
		onFailure: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Forbidden", http.StatusForbidden)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !m.ValidateToken(r.Context(), sessionID(r), TokenFromRequest(r)) {
				cfg.onFailure(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromRequest returns the token from the header, falling back to the form field.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(HeaderName); token != "" {
		return token
	}
	return r.PostFormValue(FormField)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
