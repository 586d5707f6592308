package csrf

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore keeps tokens in process memory.
// Expired tokens are dropped lazily on access.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]memoryEntry
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]memoryEntry),
		now:    time.Now,
	}
}

func (s *MemoryStore) Set(_ context.Context, sessionID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[sessionID] = memoryEntry{token: token, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	e, ok := s.tokens[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", ErrTokenNotFound
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.tokens, sessionID)
		s.mu.Unlock()
		return "", ErrTokenNotFound
	}
	return e.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, sessionID)
	return nil
}
