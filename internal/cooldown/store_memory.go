package cooldown

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps cooldowns in process memory, for tests and deployments
// without Redis. Entries expire lazily on read.
type InMemoryStore struct {
	mu    sync.RWMutex
	until map[string]time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{until: make(map[string]time.Time)}
}

func (s *InMemoryStore) MarkDenied(_ context.Context, providerID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until[providerID] = until
	return nil
}

func (s *InMemoryStore) DeniedUntil(_ context.Context, providerID string) (time.Time, bool, error) {
	s.mu.RLock()
	until, ok := s.until[providerID]
	s.mu.RUnlock()
	if !ok {
		return time.Time{}, false, nil
	}
	if time.Now().After(until) {
		s.mu.Lock()
		delete(s.until, providerID)
		s.mu.Unlock()
		return time.Time{}, false, nil
	}
	return until, true, nil
}
