package csrf

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/pkg/logger"
)

const (
	// HeaderName is the request header carrying the token.
	HeaderName = "X-CSRF-Token"
	// FormField is the form field carrying the token.
	FormField = "csrf_token"

	DefaultTTL = 24 * time.Hour
)

// GenerateToken returns a fresh random token.
func GenerateToken() string {
	return uuid.NewString()
}

// Store holds one token per session.
type Store interface {
	Set(ctx context.Context, sessionID, token string, ttl time.Duration) error
	// Get returns ErrTokenNotFound when nothing is stored.
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// Manager binds tokens to sessions.
type Manager struct {
	store Store
	ttl   time.Duration
	log   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets how long an issued token is kept. Should match the session TTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger sets the logger used to report store failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a token manager on top of store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   DefaultTTL,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue generates a token, stores it for the session and returns it.
func (m *Manager) Issue(ctx context.Context, sessionID string) (string, error) {
	token := GenerateToken()
	if err := m.SetToken(ctx, sessionID, token); err != nil {
		return "", err
	}
	return token, nil
}

// SetToken replaces the session's token.
func (m *Manager) SetToken(ctx context.Context, sessionID, token string) error {
	if sessionID == "" {
		return ErrMissingSession
	}
	return m.store.Set(ctx, sessionID, token, m.ttl)
}

// GetToken returns the session's current token.
func (m *Manager) GetToken(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	token, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			m.log.ErrorContext(ctx, "failed to load csrf token",
				logger.Component("csrf"),
				logger.Error(err),
			)
		}
		return "", false
	}
	return token, true
}

// ValidateToken reports whether presented equals the session's stored token.
// It is false when nothing is stored. A stored empty token matches only an
// empty presented value.
func (m *Manager) ValidateToken(ctx context.Context, sessionID, presented string) bool {
	stored, ok := m.GetToken(ctx, sessionID)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// Clear removes the session's token, e.g. on sign out.
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, sessionID)
}
