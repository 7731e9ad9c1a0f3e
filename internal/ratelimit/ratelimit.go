// Package ratelimit throttles submission traffic. The intake endpoint is the
// only unauthenticated-adjacent write surface, so it gets a per-client window.
package ratelimit

import (
	"context"
	"time"
)

// Result reports the outcome of one admission check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store decides whether a keyed request fits inside the window and counts it.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}
