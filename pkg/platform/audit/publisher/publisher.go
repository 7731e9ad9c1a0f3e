// Package publisher decouples audit emission from audit persistence. Domain
// services call Emit and move on; delivery to the store runs either inline
// (sync mode, the test default) or on a buffered background goroutine (async
// mode, the production default) so a slow sink never stalls a decision.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "gatehouse/pkg/platform/audit"
)

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous delivery with the
// given channel capacity. When the buffer is full, events are dropped rather
// than blocking the caller; audit loss is preferable to blocking a lifecycle
// transition.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.buffer = make(chan audit.Event, size)
	}
}

// WithLogger attaches a logger for drop/persist failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	buffer  chan audit.Event
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an audit event. Sync mode persists inline and returns the
// store error; async mode enqueues and always returns nil (full buffer drops
// the event with a log line).
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.CategoryFor(audit.AuditEvent(event.Action))
	}

	if p.buffer == nil {
		return p.store.Append(ctx, event)
	}

	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return nil
	}

	select {
	case p.buffer <- event:
	default:
		p.logger.Warn("audit buffer full, dropping event",
			"action", event.Action,
			"application_id", event.ApplicationID,
		)
	}
	return nil
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.buffer {
		// Background persistence is detached from any request lifetime.
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("failed to persist audit event",
				"action", event.Action,
				"error", err,
			)
		}
	}
}

// Close stops accepting events and, in async mode, drains the buffer before
// returning.
func (p *Publisher) Close() {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.buffer != nil {
		close(p.buffer)
		p.wg.Wait()
	}
}
