// Package file persists the whole dataset as one JSON document. It serves
// single-user deployments that do not run a database.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/storage/memory"
)

// Store serves reads from memory and rewrites the file after every write.
type Store struct {
	*memory.Store
	path string
}

// Open loads path, creating an empty dataset when the file does not exist.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "./data/partnerships.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w: %w", common.ErrStoreUnavailable, err)
	}

	snap, err := load(path)
	if err != nil {
		return nil, err
	}

	s := &Store{path: path}
	s.Store = memory.NewFromSnapshot(snap, s.persist)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.persist(s.Snapshot()); err != nil {
			return nil, fmt.Errorf("initialize %s: %w: %w", path, common.ErrStoreUnavailable, err)
		}
	}

	logger.Storage().Info("File store opened",
		"path", path,
		"partners", len(snap.Partnerships),
		"global_events", len(snap.GlobalEvents))
	return s, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Health checks that the data file is still reachable.
func (s *Store) Health() error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("stat %s: %w: %w", s.path, common.ErrStoreUnavailable, err)
	}
	return nil
}

func load(path string) (memory.Snapshot, error) {
	var snap memory.Snapshot
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("read %s: %w: %w", path, common.ErrStoreUnavailable, err)
	}
	if len(data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode %s: %w", path, err)
	}
	return snap, nil
}

// persist writes snap to a temp file next to the target and renames it into
// place, so readers never see a partial document.
func (s *Store) persist(snap memory.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".partnerships-*.json")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		logger.Storage().Error("Failed to persist file store", "path", s.path, "error", err)
		return err
	}

	logger.Storage().Debug("File store persisted", "path", s.path, "bytes", len(data))
	return nil
}
