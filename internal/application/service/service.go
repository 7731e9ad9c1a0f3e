// Package service is the lifecycle controller: it owns every transition an
// application can make and the order of its side effects. The authoritative
// state change always commits to the store first; notification is best-effort
// and strictly after.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	appmetrics "gatehouse/internal/application/metrics"
	"gatehouse/internal/application/models"
	"gatehouse/internal/application/validate"
	"gatehouse/internal/notify"
	"gatehouse/internal/policy"
	"gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	audit "gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

// Store is the partition contract the controller drives. It mirrors
// store.Store; redeclared here so the mock generator picks it up with the
// rest of the collaborators.
type Store interface {
	CreateActive(ctx context.Context, app models.Application) error
	FindActive(ctx context.Context, id domain.ApplicationID) (models.Application, error)
	ListActive(ctx context.Context) ([]models.Application, error)
	ListArchived(ctx context.Context) ([]models.Application, error)
	MoveToArchive(ctx context.Context, id domain.ApplicationID, decided models.Application) error
	Reconcile(ctx context.Context) (int, error)
}

// Dispatcher delivers decision messages. See notify.Dispatcher.
type Dispatcher interface {
	Notify(ctx context.Context, recipient domain.Identity, decision notify.Decision) error
}

// Cooldowns tracks reapply waiting periods for denied applicants.
type Cooldowns interface {
	MarkDenied(ctx context.Context, providerID string, until time.Time) error
	DeniedUntil(ctx context.Context, providerID string) (time.Time, bool, error)
}

// AuditPublisher records lifecycle and access events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the application lifecycle.
type Service struct {
	store      Store
	policy     *policy.Policy
	dispatcher Dispatcher
	cooldowns  Cooldowns
	audit      AuditPublisher
	metrics    *appmetrics.Metrics
	logger     *slog.Logger
}

func New(store Store, pol *policy.Policy, dispatcher Dispatcher, cooldowns Cooldowns, auditPub AuditPublisher, metrics *appmetrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		policy:     pol,
		dispatcher: dispatcher,
		cooldowns:  cooldowns,
		audit:      auditPub,
		metrics:    metrics,
		logger:     logger,
	}
}

// Submit validates a submission, snapshots the applicant's identity, and
// appends the new application to the active partition.
func (s *Service) Submit(ctx context.Context, sub models.Submission) (*models.Application, error) {
	ident := requestcontext.Identity(ctx)
	if ident.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "sign in before submitting an application")
	}

	if err := validate.Submission(sub); err != nil {
		return nil, err
	}

	if until, active := s.cooldownActive(ctx, ident.ProviderID); active {
		return nil, dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("a denied application is in its waiting period; you may reapply after %s", until.UTC().Format("2 January 2006")))
	}

	app := models.NewApplication(domain.NewApplicationID(), sub, ident, requestcontext.Now(ctx))
	if err := s.store.CreateActive(ctx, *app); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save application")
	}

	s.emitAudit(ctx, audit.Event{
		ApplicationID: app.ID,
		ActorID:       ident.ProviderID,
		Action:        string(audit.EventApplicationSubmitted),
	})
	if s.metrics != nil {
		s.metrics.IncrementSubmitted()
	}
	return app, nil
}

// ListPending returns the active partition in insertion order. Reviewer only.
func (s *Service) ListPending(ctx context.Context) ([]models.Application, error) {
	if _, err := s.authorize(ctx, policy.OpListPending); err != nil {
		return nil, err
	}
	apps, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending applications")
	}
	return apps, nil
}

// ListArchived returns decided applications. Reviewer only.
func (s *Service) ListArchived(ctx context.Context) ([]models.Application, error) {
	if _, err := s.authorize(ctx, policy.OpListArchived); err != nil {
		return nil, err
	}
	apps, err := s.store.ListArchived(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list archived applications")
	}
	return apps, nil
}

// Decide moves a pending application to its terminal state.
//
// The sequence is commit-then-notify: the archive move is the authoritative
// state change, and nothing after it may undo or block it. A notification
// failure is logged and counted, never surfaced to the reviewer.
func (s *Service) Decide(ctx context.Context, id domain.ApplicationID, outcome models.Status, reason string) (*models.Application, error) {
	start := time.Now()

	reviewer, err := s.authorize(ctx, policy.OpDecide)
	if err != nil {
		return nil, err
	}

	app, err := s.store.FindActive(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Covers double decisions too: a decided record has left the
			// active partition.
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}

	if err := app.CanDecide(outcome); err != nil {
		return nil, err
	}

	decidedAt := requestcontext.Now(ctx)
	decided := app.Decided(outcome, reason, decidedAt)

	if err := s.store.MoveToArchive(ctx, id, decided); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Another reviewer's decision won the race.
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to archive decision")
	}

	// Everything below is post-commit: log-and-continue territory.

	if outcome == models.StatusDenied {
		until := decidedAt.Add(models.ReapplyCooldown)
		if err := s.cooldowns.MarkDenied(ctx, app.Identity.ProviderID, until); err != nil {
			s.logger.WarnContext(ctx, "failed to record reapply cooldown",
				"request_id", requestcontext.RequestID(ctx),
				"application_id", id,
				"error", err,
			)
		}
	}

	s.emitAudit(ctx, audit.Event{
		ApplicationID: decided.ID,
		ActorID:       reviewer.ProviderID,
		Action:        decisionAction(outcome),
		Outcome:       string(outcome),
		Reason:        reason,
	})

	s.notifyApplicant(ctx, decided)

	if s.metrics != nil {
		s.metrics.IncrementDecided(string(outcome))
		s.metrics.ObserveDecideDuration(time.Since(start))
	}
	return &decided, nil
}

// Reconcile repairs interrupted archive moves. Run once at startup.
func (s *Service) Reconcile(ctx context.Context) error {
	repaired, err := s.store.Reconcile(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reconcile partitions")
	}
	if repaired > 0 {
		s.logger.Warn("repaired interrupted archive moves", "count", repaired)
	}
	return nil
}

func (s *Service) authorize(ctx context.Context, op policy.Operation) (domain.Identity, error) {
	ident := requestcontext.Identity(ctx)
	if err := s.policy.Authorize(ident, op); err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			s.emitAudit(ctx, audit.Event{
				ActorID: ident.ProviderID,
				Action:  string(audit.EventAccessDenied),
				Reason:  string(op),
			})
		}
		return domain.Identity{}, err
	}
	return ident, nil
}

func (s *Service) cooldownActive(ctx context.Context, providerID string) (time.Time, bool) {
	until, ok, err := s.cooldowns.DeniedUntil(ctx, providerID)
	if err != nil {
		// The cooldown gate is advisory; a broken store must not block intake.
		s.logger.WarnContext(ctx, "cooldown lookup failed, admitting submission",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return time.Time{}, false
	}
	return until, ok
}

func (s *Service) notifyApplicant(ctx context.Context, decided models.Application) {
	err := s.dispatcher.Notify(ctx, decided.Identity, notify.Decision{
		Outcome:   decided.Status,
		Reason:    decided.StatusReason,
		DecidedAt: *decided.DecidedAt,
	})
	if err == nil {
		return
	}

	s.logger.ErrorContext(ctx, "decision notification failed on every channel",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", decided.ID,
		"recipient", decided.Identity.ProviderID,
		"error", err,
	)
	s.emitAudit(ctx, audit.Event{
		ApplicationID: decided.ID,
		ActorID:       decided.Identity.ProviderID,
		Action:        string(audit.EventNotificationFailed),
		Outcome:       string(decided.Status),
	})
	if s.metrics != nil {
		s.metrics.IncrementNotificationFailures()
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.Timestamp = requestcontext.Now(ctx)
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

func decisionAction(outcome models.Status) string {
	if outcome == models.StatusApproved {
		return string(audit.EventApplicationApproved)
	}
	return string(audit.EventApplicationDenied)
}
