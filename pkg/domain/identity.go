package domain

import "time"

// Identity is the snapshot of an applicant's external-provider profile taken
// at submission time. It is copied onto the application record, never
// referenced, so later profile changes do not retroactively alter history.
type Identity struct {
	ProviderID       string    `json:"provider_id"`
	Username         string    `json:"username"`
	Discriminator    string    `json:"discriminator,omitempty"`
	Verified         bool      `json:"verified"`
	Email            string    `json:"email"`
	AccountCreatedAt time.Time `json:"account_created_at"`
}

// IsZero reports whether no identity was presented at all. The policy layer
// uses this to distinguish unauthenticated callers from forbidden ones.
func (i Identity) IsZero() bool {
	return i.ProviderID == ""
}
