package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bjulian5/ghprs/internal/model"
)

// stateFile is the on-disk layout: every named session's state in one document
type stateFile struct {
	Sessions map[string]model.SessionState `json:"sessions"`
}

// Store persists session state as a single JSON file
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a Store backed by the file at path. The file is created on first save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load returns the state saved under name, or nil when there is none
func (s *Store) Load(ctx context.Context, name string) (*model.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}

	state, ok := file.Sessions[name]
	if !ok {
		return nil, nil
	}
	if state.PRs == nil {
		state.PRs = make(map[string]model.TrackedPR)
	}
	return &state, nil
}

// Save replaces the state stored under name
func (s *Store) Save(ctx context.Context, name string, state model.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}
	file.Sessions[name] = state
	return s.write(file)
}

// Delete removes the state stored under name. Deleting a missing name is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := file.Sessions[name]; !ok {
		return nil
	}
	delete(file.Sessions, name)
	return s.write(file)
}

// read loads the whole file. A missing file reads as empty.
func (s *Store) read() (*stateFile, error) {
	file := &stateFile{Sessions: make(map[string]model.SessionState)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}
	if file.Sessions == nil {
		file.Sessions = make(map[string]model.SessionState)
	}
	return file, nil
}

// write replaces the file atomically via a temp file in the same directory
func (s *Store) write(file *stateFile) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
