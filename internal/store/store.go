package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/online-judge-tools/template-generator-webapp/internal/models"
	"github.com/spf13/afero"
)

// CorruptSnapshotError reports an existing snapshot file that cannot be parsed.
// The file is left untouched.
type CorruptSnapshotError struct {
	Path string
	Err  error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s is broken: %v", e.Path, e.Err)
}

func (e *CorruptSnapshotError) Unwrap() error {
	return e.Err
}

// Store reads and writes snapshot files
type Store struct {
	fs afero.Fs
}

// New creates a store backed by fs
func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOs creates a store backed by the real filesystem
func NewOs() *Store {
	return New(afero.NewOsFs())
}

// Load reads the snapshot at path. A missing file yields an empty snapshot.
func (s *Store) Load(path string) (models.Snapshot, error) {
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}
	if !exists {
		return models.Snapshot{}, nil
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	// null would decode into an empty slice without complaint
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, &CorruptSnapshotError{Path: path, Err: errors.New("expected a JSON array, got null")}
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &CorruptSnapshotError{Path: path, Err: err}
	}
	for i, e := range entries {
		if e.URL == "" {
			return nil, &CorruptSnapshotError{Path: path, Err: fmt.Errorf("entry %d has no url", i)}
		}
	}

	return models.FromEntries(entries), nil
}

// Save writes snap to path as a JSON array, replacing the previous file
// only once the new content is fully written.
func (s *Store) Save(path string, snap models.Snapshot) error {
	data, err := json.Marshal(snap.Entries())
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
