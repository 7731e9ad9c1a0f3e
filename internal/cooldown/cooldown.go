// Package cooldown tracks the reapplication waiting period quoted to denied
// applicants. A denied applicant may not submit again until the period runs
// out; the store remembers when it ends.
package cooldown

import (
	"context"
	"time"
)

// Store records and reports per-applicant cooldowns, keyed by provider id.
type Store interface {
	// MarkDenied records that the applicant was denied and may not reapply
	// before until.
	MarkDenied(ctx context.Context, providerID string, until time.Time) error

	// DeniedUntil reports the active cooldown end for the applicant, with
	// ok=false when no cooldown is in effect.
	DeniedUntil(ctx context.Context, providerID string) (until time.Time, ok bool, err error)
}
