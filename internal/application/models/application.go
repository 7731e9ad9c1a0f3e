package models

import (
	"time"

	"gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// Submission is the typed, already-validated intake shape. It exists so the
// lifecycle service never handles raw request maps: the validator is the only
// way to produce one from untrusted input.
type Submission struct {
	Username   string `json:"username"`
	Age        int    `json:"age"`
	PlatformID string `json:"platform_id"`
	AccountURL string `json:"account_url"`
	Experience string `json:"experience"`
	Backstory  string `json:"backstory"`
}

// Application is the aggregate this whole service exists to shepherd.
//
// Invariants:
//   - ID and SubmittedAt are immutable after construction
//   - Applicant fields and the Identity snapshot never change after creation
//   - Status is pending if and only if the record sits in the active partition
//   - StatusReason and DecidedAt are set if and only if Status is terminal
//   - Exactly one copy of an ID exists across both partitions at any time
//     (enforced by the store's move contract, not by this type)
type Application struct {
	ID          domain.ApplicationID `json:"id"`
	SubmittedAt time.Time            `json:"submitted_at"`

	Username   string `json:"username"`
	Age        int    `json:"age"`
	PlatformID string `json:"platform_id"`
	AccountURL string `json:"account_url"`
	Experience string `json:"experience"`
	Backstory  string `json:"backstory"`

	// Identity is the applicant's provider profile as it was at submission
	// time. Copied, not referenced: later profile changes must not rewrite
	// history.
	Identity domain.Identity `json:"identity"`

	Status       Status     `json:"status"`
	StatusReason string     `json:"status_reason,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

// NewApplication builds a pending application from a validated submission and
// the applicant's identity snapshot.
func NewApplication(id domain.ApplicationID, sub Submission, ident domain.Identity, now time.Time) *Application {
	return &Application{
		ID:          id,
		SubmittedAt: now,
		Username:    sub.Username,
		Age:         sub.Age,
		PlatformID:  sub.PlatformID,
		AccountURL:  sub.AccountURL,
		Experience:  sub.Experience,
		Backstory:   sub.Backstory,
		Identity:    ident,
		Status:      StatusPending,
	}
}

// CanDecide checks that the application is still open for a decision.
func (a *Application) CanDecide(outcome Status) error {
	if !a.Status.CanTransitionTo(outcome) {
		return dErrors.New(dErrors.CodeInvariantViolation, "application has already been decided")
	}
	return nil
}

// Decided returns the terminal copy of the application: all original fields
// unchanged, status fields stamped. The receiver is not mutated; the caller
// hands the copy to the store's archive move.
func (a *Application) Decided(outcome Status, reason string, now time.Time) Application {
	decided := *a
	decided.Status = outcome
	decided.StatusReason = reason
	decided.DecidedAt = &now
	return decided
}

// IsPending reports whether the record belongs in the active partition.
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}
