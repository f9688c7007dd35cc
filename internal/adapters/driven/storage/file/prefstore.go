// Package file provides a preference store that keeps one JSON file per key.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
)

// Ensure PreferenceStore implements the interface.
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore writes each key to <dir>/<key>.json.
// Writes go through a temporary file and a rename, so a crash mid-write
// leaves the previous record intact.
type PreferenceStore struct {
	dir string
}

// NewPreferenceStore creates a store rooted at dir.
// If dir is empty, defaults to ~/.viewsync/data.
func NewPreferenceStore(dir string) (*PreferenceStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".viewsync", "data")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", domain.ErrStorageUnavailable, dir, err)
	}
	return &PreferenceStore{dir: dir}, nil
}

// Dir returns the directory holding the records.
func (s *PreferenceStore) Dir() string {
	return s.dir
}

// Get reads the value stored under key.
func (s *PreferenceStore) Get(key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return data, nil
}

// Put writes value under key, replacing any previous value.
func (s *PreferenceStore) Put(key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

// path maps a key to its file. Keys may not name directories.
func (s *PreferenceStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: preference key %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
