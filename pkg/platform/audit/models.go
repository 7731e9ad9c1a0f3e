package audit

import (
	"time"

	"gatehouse/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with lasting significance to the
	// community record: every decision that admits or refuses an applicant.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to monitoring and forensics:
	// rejected tokens, non-reviewers probing reviewer endpoints.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine visibility events that can be
	// sampled or aggregated: submissions, notification outcomes.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category      EventCategory        `json:"category"`
	Timestamp     time.Time            `json:"timestamp"`
	ApplicationID domain.ApplicationID `json:"application_id,omitempty"`
	// ActorID is the provider id of whoever performed the action: the
	// applicant for submissions, the reviewer for decisions.
	ActorID   string `json:"actor_id,omitempty"`
	Action    string `json:"action"`
	Outcome   string `json:"outcome,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	EventApplicationSubmitted AuditEvent = "application_submitted"
	EventApplicationApproved  AuditEvent = "application_approved"
	EventApplicationDenied    AuditEvent = "application_denied"
	EventNotificationFailed   AuditEvent = "notification_failed"
	EventAccessDenied         AuditEvent = "access_denied"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventApplicationSubmitted: CategoryOperations,
	EventApplicationApproved:  CategoryCompliance,
	EventApplicationDenied:    CategoryCompliance,
	EventNotificationFailed:   CategoryOperations,
	EventAccessDenied:         CategorySecurity,
}

// CategoryFor returns the category for a known audit event, defaulting to
// operations for anything unmapped.
func CategoryFor(event AuditEvent) EventCategory {
	if category, ok := eventCategories[event]; ok {
		return category
	}
	return CategoryOperations
}
