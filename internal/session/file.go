package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore keeps the single session of a terminal user in a YAML file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

// Load returns the stored session, or a fresh one when none has been saved yet.
func (f *FileStore) Load() (*Session, error) {
	const op = "session.FileStore.Load"

	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var s Session
	if err = yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", op, f.path, err)
	}

	if s.ID == "" {
		return New(), nil
	}

	return &s, nil
}

func (f *FileStore) Save(s *Session) error {
	const op = "session.FileStore.Save"

	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = os.WriteFile(f.path, b, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session.FileStore.Clear: %w", err)
	}

	return nil
}
