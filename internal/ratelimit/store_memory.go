package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore is a sliding-window limiter for single-instance deployments.
// Sliding rather than fixed windows, so a burst straddling a window boundary
// cannot double the effective limit.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{windows: make(map[string][]time.Time)}
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-window)

	kept := s.windows[key][:0]
	for _, ts := range s.windows[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= limit {
		s.windows[key] = kept
		return &Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: kept[0].Add(window)}, nil
	}

	kept = append(kept, now)
	s.windows[key] = kept
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(kept),
		ResetAt:   kept[0].Add(window),
	}, nil
}
