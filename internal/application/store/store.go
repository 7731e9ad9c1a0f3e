// Package store defines the two-partition persistence contract for
// application records: an active partition holding pending applications and
// an archived partition holding decided ones. Exactly one copy of an id
// exists across the union of both partitions at any time.
package store

import (
	"context"

	"gatehouse/internal/application/models"
	"gatehouse/pkg/domain"
)

// Store is the partition contract. Implementations must serialize each
// partition's read-modify-write cycle so racing decisions cannot lose
// updates, and must return wrapped sentinel errors (pkg/platform/sentinel)
// so services can translate them.
type Store interface {
	// CreateActive appends a new application to the active partition.
	CreateActive(ctx context.Context, app models.Application) error

	// FindActive looks up a pending application by id; sentinel.ErrNotFound
	// when the id is absent from the active partition.
	FindActive(ctx context.Context, id domain.ApplicationID) (models.Application, error)

	// ListActive returns the active partition in insertion order. An empty
	// or never-created partition yields an empty slice, not an error.
	ListActive(ctx context.Context) ([]models.Application, error)

	// ListArchived returns the archived partition in insertion order,
	// lazily initializing an empty partition on first read.
	ListArchived(ctx context.Context) ([]models.Application, error)

	// MoveToArchive removes the record with id from active and appends
	// decided to archived, atomically from the caller's perspective.
	// sentinel.ErrNotFound when id is absent from active.
	//
	// Ordering contract: the archive append commits strictly before the
	// active removal. A crash between the two writes therefore leaves the
	// id in both partitions, never in neither — Reconcile resolves that
	// towards "archived wins".
	MoveToArchive(ctx context.Context, id domain.ApplicationID, decided models.Application) error

	// Reconcile repairs an interrupted move: any id present in both
	// partitions is removed from active. Returns the number of records
	// repaired. Run at startup before serving traffic.
	Reconcile(ctx context.Context) (int, error)
}
