package testutil

import (
	"net/http"
	"time"

	"gatehouse/pkg/domain"
	"gatehouse/pkg/requestcontext"
)

// Applicant returns a plausible verified identity snapshot for tests.
func Applicant(providerID string) domain.Identity {
	return domain.Identity{
		ProviderID:       providerID,
		Username:         "roadrunner",
		Verified:         true,
		Email:            "roadrunner@example.com",
		AccountCreatedAt: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithIdentity adds an actor identity to the request context. This simulates
// what the auth middleware does for authenticated requests.
func WithIdentity(req *http.Request, ident domain.Identity) *http.Request {
	return req.WithContext(requestcontext.WithIdentity(req.Context(), ident))
}

// WithTime pins the request-scoped clock, so timestamps stamped by the
// handler chain are deterministic.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
