package models

import (
	"strings"
	"time"

	dErrors "gatehouse/pkg/domain-errors"
)

// ReapplyCooldown is the waiting period a denied applicant must sit out
// before submitting again. The denial message quotes it, and the intake path
// enforces it.
const ReapplyCooldown = 14 * 24 * time.Hour

// Status is the lifecycle state of an application.
//
// Pending is the only state records hold in the active partition; Approved
// and Denied are terminal and exist only in the archive. There is no path
// back from a terminal state, and no path between the two terminal states.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Terminal reports whether the status ends the lifecycle.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// CanTransitionTo reports whether the transition is legal. Only
// pending → approved and pending → denied exist.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusPending && target.Terminal()
}

// ParseOutcome parses a reviewer-supplied decision outcome. Pending is not an
// outcome: reviewers can only end the lifecycle.
func ParseOutcome(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusDenied:
		return StatusDenied, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "status must be approved or denied")
	}
}
