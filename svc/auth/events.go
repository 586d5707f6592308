package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/leadhub/pkg/logger"
)

// EventType names an authentication state change.
type EventType string

const (
	EventSignedUp  EventType = "signed_up"
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

// Event is delivered to OnStateChange listeners.
type Event struct {
	Type   EventType
	UserID uuid.UUID
	At     time.Time
}

// Listener receives state change events.
type Listener func(ctx context.Context, e Event)

// OnStateChange subscribes fn to every state change and returns a function
// that removes the subscription.
func (s *Service) OnStateChange(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// emit calls every listener synchronously. A panicking listener is logged
// and does not affect the others.
func (s *Service) emit(ctx context.Context, t EventType, userID uuid.UUID) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	e := Event{Type: t, UserID: userID, At: s.now()}
	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.ErrorContext(ctx, "auth state listener panicked",
						logger.Component("auth"),
						logger.UserID(userID),
						logger.Event(string(t)),
						slog.Any("panic", r),
					)
				}
			}()
			fn(ctx, e)
		}()
	}
}
