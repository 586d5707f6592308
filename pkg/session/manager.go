package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/pkg/cookie"
	"github.com/dmitrymomot/leadhub/pkg/logger"
)

// Manager binds sessions in a Store to a signed cookie.
type Manager struct {
	store Store
	jar   *cookie.Manager
	cfg   Config
	log   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager creates a session manager. Empty cookie name and zero TTL fall
// back to "leadhub_sid" and 24h.
func NewManager(store Store, jar *cookie.Manager, cfg Config, opts ...Option) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "leadhub_sid"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	m := &Manager{store: store, jar: jar, cfg: cfg, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL is the lifetime of new sessions.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

// Load returns the session referenced by the request cookie.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	id, err := m.jar.GetSigned(r, m.cfg.CookieName)
	if err != nil {
		return nil, errors.Join(ErrSessionNotFound, err)
	}
	return m.store.Get(ctx, id)
}

// Start creates an anonymous session and sets its cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter) (*Session, error) {
	sess := newSession(m.cfg.TTL)
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	m.writeCookie(w, sess)
	return sess, nil
}

// Authenticate attaches userID to a freshly issued session, replacing the
// current one if any.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*Session, error) {
	if old, err := m.Load(ctx, r); err == nil {
		if err := m.store.Delete(ctx, old.ID); err != nil {
			m.log.WarnContext(ctx, "failed to delete replaced session", logger.Error(err))
		}
	}

	sess := newSession(m.cfg.TTL)
	sess.UserID = userID
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	m.writeCookie(w, sess)
	return sess, nil
}

// Destroy deletes the current session and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer m.jar.Delete(w, m.cfg.CookieName)

	sess, err := m.Load(ctx, r)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, sess.ID)
}

func (m *Manager) writeCookie(w http.ResponseWriter, sess *Session) {
	m.jar.SetSigned(w, m.cfg.CookieName, sess.ID,
		cookie.WithMaxAge(int(time.Until(sess.ExpiresAt).Seconds())),
		cookie.WithSecure(m.cfg.SecureCookies),
	)
}
