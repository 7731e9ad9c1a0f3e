// Package notify delivers decision messages to applicants. Delivery is
// best-effort by contract: the lifecycle service calls Notify strictly after
// the archive move has committed, logs a failure, and never rolls anything
// back because of one.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gatehouse/internal/application/models"
	"gatehouse/pkg/domain"
	"gatehouse/pkg/email"
)

// Decision carries what the applicant needs to hear: the outcome, the
// reviewer's optional note, and when it was made.
type Decision struct {
	Outcome   models.Status
	Reason    string
	DecidedAt time.Time
}

// Dispatcher delivers a decision message to the applicant's provider
// identity. An error means every channel failed; it must not affect stored
// state.
type Dispatcher interface {
	Notify(ctx context.Context, recipient domain.Identity, decision Decision) error
}

// ComposeMessage renders the human-readable decision message.
func ComposeMessage(recipient domain.Identity, decision Decision) string {
	greeting := email.GreetingName(recipient.Email, recipient.Username)
	waitDays := int(models.ReapplyCooldown.Hours() / 24)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", greeting)

	switch decision.Outcome {
	case models.StatusApproved:
		b.WriteString("After reviewing your application, we're excited to let you know that your whitelist application has been ACCEPTED!\n\n")
		if decision.Reason != "" {
			fmt.Fprintf(&b, "Staff note: %s\n\n", decision.Reason)
		}
		b.WriteString("Next steps:\n")
		b.WriteString("1. Join the community server if you haven't already\n")
		b.WriteString("2. Read the rules and guidelines in the rules channel\n")
		b.WriteString("3. Connect to the server with your whitelisted account\n")
	case models.StatusDenied:
		b.WriteString("After careful consideration of your whitelist application, we regret to inform you that your application has been DENIED at this time.\n\n")
		if decision.Reason != "" {
			fmt.Fprintf(&b, "Reason: %s\n\n", decision.Reason)
		}
		fmt.Fprintf(&b, "You may reapply after a %d-day waiting period, taking into account the feedback provided.\n", waitDays)
	}

	fmt.Fprintf(&b, "\nDecision date: %s\n", decision.DecidedAt.UTC().Format("2 January 2006 15:04 MST"))
	return b.String()
}

// NoopDispatcher is used when no delivery channel is configured. It logs the
// message instead of sending it, so a tokenless dev setup still shows what
// would have gone out.
type NoopDispatcher struct {
	Logger *slog.Logger
}

func (d NoopDispatcher) Notify(ctx context.Context, recipient domain.Identity, decision Decision) error {
	if d.Logger != nil {
		d.Logger.InfoContext(ctx, "notification channel disabled, dropping decision message",
			"recipient", recipient.ProviderID,
			"outcome", decision.Outcome,
		)
	}
	return nil
}
