// Package memory implements the partition contract in process memory for
// tests and development. It intentionally favors clarity over performance.
package memory

import (
	"context"
	"fmt"
	"sync"

	"gatehouse/internal/application/models"
	"gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

type Store struct {
	mu       sync.RWMutex
	active   []models.Application
	archived []models.Application
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateActive(_ context.Context, app models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.active {
		if existing.ID == app.ID {
			return fmt.Errorf("%w: application %s already exists", sentinel.ErrConflict, app.ID)
		}
	}
	s.active = append(s.active, app)
	return nil
}

func (s *Store) FindActive(_ context.Context, id domain.ApplicationID) (models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, app := range s.active {
		if app.ID == id {
			return app, nil
		}
	}
	return models.Application{}, fmt.Errorf("%w: application %s", sentinel.ErrNotFound, id)
}

func (s *Store) ListActive(_ context.Context) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Application, len(s.active))
	copy(out, s.active)
	return out, nil
}

func (s *Store) ListArchived(_ context.Context) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Application, len(s.archived))
	copy(out, s.archived)
	return out, nil
}

func (s *Store) MoveToArchive(_ context.Context, id domain.ApplicationID, decided models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, app := range s.active {
		if app.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: application %s", sentinel.ErrNotFound, id)
	}

	s.archived = append(s.archived, decided)
	s.active = append(s.active[:idx], s.active[idx+1:]...)
	return nil
}

// Reconcile is a no-op: a process-memory store cannot observe a crash
// between the two partition writes.
func (s *Store) Reconcile(_ context.Context) (int, error) {
	return 0, nil
}
