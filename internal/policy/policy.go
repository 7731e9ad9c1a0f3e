// Package policy is the authorization gate for reviewer-only operations.
// A single static allow-list of provider ids defines the reviewer role; there
// is no approval chain beyond it.
package policy

import (
	"gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// Operation names a gated action, purely for audit and log text.
type Operation string

const (
	OpListPending  Operation = "list_pending"
	OpDecide       Operation = "decide"
	OpListArchived Operation = "list_archived"
)

// Policy holds the reviewer allow-list.
type Policy struct {
	reviewers map[string]struct{}
}

func New(reviewerIDs []string) *Policy {
	reviewers := make(map[string]struct{}, len(reviewerIDs))
	for _, id := range reviewerIDs {
		if id != "" {
			reviewers[id] = struct{}{}
		}
	}
	return &Policy{reviewers: reviewers}
}

// Authorize gates a reviewer-only operation. The two denial reasons stay
// distinct so the boundary can map them to 401 vs 403:
//   - no identity presented at all → Unauthorized
//   - identity presented but not on the allow-list → Forbidden
func (p *Policy) Authorize(actor domain.Identity, op Operation) error {
	if actor.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !p.IsReviewer(actor.ProviderID) {
		return dErrors.New(dErrors.CodeForbidden, string(op)+" requires the reviewer role")
	}
	return nil
}

// IsReviewer reports allow-list membership.
func (p *Policy) IsReviewer(providerID string) bool {
	_, ok := p.reviewers[providerID]
	return ok
}
