package audit

import "context"

// Store persists audit events. Implementations must be safe for concurrent
// appends. Query surface stays off the interface: the memory store exposes
// listing for tests, forwarding sinks (Kafka) only append.
type Store interface {
	Append(ctx context.Context, event Event) error
}
