package memory

import (
	"context"
	"sync"

	"gatehouse/pkg/domain"
	audit "gatehouse/pkg/platform/audit"
)

// InMemoryStore keeps audit events in process memory. It backs unit tests and
// deployments that have not wired a durable sink yet.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByApplication returns events for one application in append order.
func (s *InMemoryStore) ListByApplication(_ context.Context, id domain.ApplicationID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, event := range s.events {
		if event.ApplicationID == id {
			out = append(out, event)
		}
	}
	return out, nil
}

// ListAll returns every stored event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}
