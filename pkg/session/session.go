package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind the session cookie.
type Session struct {
	ID        string            `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Data      map[string]string `json:"data,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedAt time.Time         `json:"created_at"`
}

func newSession(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Data:      make(map[string]string),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsAuthenticated reports whether a user signed in with this session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}

func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

func (s *Session) Get(key string) (string, bool) {
	if s == nil || s.Data == nil {
		return "", false
	}
	v, ok := s.Data[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

type contextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session loaded by the middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// IDFromContext returns the session ID or "".
func IDFromContext(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.ID
	}
	return ""
}

// UserIDFromContext returns the signed in user.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	s, ok := FromContext(ctx)
	if !ok || !s.IsAuthenticated() {
		return uuid.Nil, false
	}
	return s.UserID, true
}
