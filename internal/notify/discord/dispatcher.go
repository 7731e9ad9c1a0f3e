package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gatehouse/internal/notify"
	"gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

// Dispatcher sends decision DMs through the shared bot client. Primary path
// reuses the cached DM channel; on any failure it invalidates the cache and
// retries once through a freshly opened channel. Each attempt runs under its
// own timeout — a hung delivery counts as a failed one.
type Dispatcher struct {
	client  *Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewDispatcher(client *Client, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, recipient domain.Identity, decision notify.Decision) error {
	content := notify.ComposeMessage(recipient, decision)

	primaryErr := d.attempt(ctx, func(ctx context.Context) error {
		return d.client.SendDM(ctx, recipient.ProviderID, content)
	})
	if primaryErr == nil {
		return nil
	}

	d.logger.WarnContext(ctx, "primary delivery failed, retrying over fresh channel",
		"recipient", recipient.ProviderID,
		"error", primaryErr,
	)
	d.client.InvalidateDM(recipient.ProviderID)

	fallbackErr := d.attempt(ctx, func(ctx context.Context) error {
		return d.client.SendDMFresh(ctx, recipient.ProviderID, content)
	})
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("%w: primary: %v; fallback: %v", sentinel.ErrDeliveryFailed, primaryErr, fallbackErr)
}

func (d *Dispatcher) attempt(ctx context.Context, send func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return send(ctx)
}
