// Package file persists each partition as a single JSON document under the
// data directory, the smallest durable layout that honors the partition
// contract at whitelist-intake volumes.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gatehouse/internal/application/models"
	"gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

const (
	activeFile   = "applications.json"
	archivedFile = "archived_applications.json"
)

// Store keeps the active and archived partitions as two JSON files. Every
// write rewrites the whole partition through a temp file and rename, so a
// partition is always a complete, parseable document on disk.
//
// A single mutex guards both partitions. MoveToArchive spans the two files
// and per-partition locks would need a fixed acquisition order anyway; at
// these volumes one lock is simpler and just as correct.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// New prepares the data directory. Partitions are created lazily on first
// write or archive read.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %w", sentinel.ErrUnavailable, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) CreateActive(_ context.Context, app models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.readPartition(activeFile)
	if err != nil {
		return err
	}
	for _, existing := range active {
		if existing.ID == app.ID {
			return fmt.Errorf("%w: application %s already exists", sentinel.ErrConflict, app.ID)
		}
	}

	active = append(active, app)
	return s.writePartition(activeFile, active)
}

func (s *Store) FindActive(_ context.Context, id domain.ApplicationID) (models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active, err := s.readPartition(activeFile)
	if err != nil {
		return models.Application{}, err
	}
	for _, app := range active {
		if app.ID == id {
			return app, nil
		}
	}
	return models.Application{}, fmt.Errorf("%w: application %s", sentinel.ErrNotFound, id)
}

func (s *Store) ListActive(_ context.Context) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readPartition(activeFile)
}

func (s *Store) ListArchived(_ context.Context) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	archived, err := s.readPartition(archivedFile)
	if err != nil {
		return nil, err
	}
	// Lazy initialization: materialize the empty archive on first read so
	// subsequent reads exercise the normal path.
	if _, statErr := os.Stat(filepath.Join(s.dir, archivedFile)); errors.Is(statErr, fs.ErrNotExist) {
		if err := s.writePartition(archivedFile, archived); err != nil {
			return nil, err
		}
	}
	return archived, nil
}

func (s *Store) MoveToArchive(_ context.Context, id domain.ApplicationID, decided models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.readPartition(activeFile)
	if err != nil {
		return err
	}

	idx := -1
	for i, app := range active {
		if app.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: application %s", sentinel.ErrNotFound, id)
	}

	archived, err := s.readPartition(archivedFile)
	if err != nil {
		return err
	}

	// Archive append commits first. A crash before the active rewrite
	// leaves the id in both partitions; Reconcile resolves towards the
	// archive, so the record can be duplicated transiently but never lost.
	archived = append(archived, decided)
	if err := s.writePartition(archivedFile, archived); err != nil {
		return err
	}

	active = append(active[:idx], active[idx+1:]...)
	return s.writePartition(activeFile, active)
}

func (s *Store) Reconcile(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.readPartition(activeFile)
	if err != nil {
		return 0, err
	}
	archived, err := s.readPartition(archivedFile)
	if err != nil {
		return 0, err
	}

	archivedIDs := make(map[domain.ApplicationID]struct{}, len(archived))
	for _, app := range archived {
		archivedIDs[app.ID] = struct{}{}
	}

	kept := active[:0]
	repaired := 0
	for _, app := range active {
		if _, dup := archivedIDs[app.ID]; dup {
			repaired++
			continue
		}
		kept = append(kept, app)
	}
	if repaired == 0 {
		return 0, nil
	}

	if err := s.writePartition(activeFile, kept); err != nil {
		return 0, err
	}
	return repaired, nil
}

// readPartition loads a partition document. A missing file is an empty
// partition, not an error.
func (s *Store) readPartition(name string) ([]models.Application, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Application{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", sentinel.ErrUnavailable, name, err)
	}
	if len(raw) == 0 {
		return []models.Application{}, nil
	}

	var apps []models.Application
	if err := json.Unmarshal(raw, &apps); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", sentinel.ErrUnavailable, name, err)
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return apps, nil
}

// writePartition replaces a partition document atomically: write to a temp
// file in the same directory, fsync, then rename over the target.
func (s *Store) writePartition(name string, apps []models.Application) error {
	payload, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", sentinel.ErrUnavailable, name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: stage %s: %w", sentinel.ErrUnavailable, name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: stage %s: %w", sentinel.ErrUnavailable, name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", sentinel.ErrUnavailable, name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", sentinel.ErrUnavailable, name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("%w: replace %s: %w", sentinel.ErrUnavailable, name, err)
	}
	return nil
}
