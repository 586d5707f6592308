package session

import (
	"net/http"

	"github.com/dmitrymomot/leadhub/pkg/logger"
)

// Middleware puts the current session, if any, into the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Load(r.Context(), r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// Ensure is Middleware that starts an anonymous session when none exists.
func (m *Manager) Ensure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.Load(r.Context(), r)
		if err != nil {
			sess, err = m.Start(r.Context(), w)
			if err != nil {
				m.log.ErrorContext(r.Context(), "failed to start session", logger.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireAuth rejects requests without a signed in session with 401.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok {
			loaded, err := m.Load(r.Context(), r)
			if err == nil {
				sess, ok = loaded, true
			}
		}
		if !ok || !sess.IsAuthenticated() {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
