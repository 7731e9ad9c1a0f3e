package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and delivery channels
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the partition
// - ErrConflict: record already exists where it must not
// - ErrInvalidState: record in wrong partition/status for the operation
// - ErrUnavailable: storage medium cannot be read or written
// - ErrDeliveryFailed: every notification channel refused the message
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidState   = errors.New("invalid state")
	ErrUnavailable    = errors.New("unavailable")
	ErrDeliveryFailed = errors.New("delivery failed")
)
