package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every key in one JSON object document. Writes replace the
// whole document through a temp file and rename.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the JSON document at path. The file
// is created on first Set.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file kv: create dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

// ErrCorrupt reports a document that exists but is not a JSON object of
// strings.
var ErrCorrupt = errors.New("corrupt document")

// Set stores value under key. A corrupt document does not block writes: it
// is moved aside to <path>.corrupt and a new document holding only key is
// written, so any other keys it held are no longer visible to the store.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	switch {
	case errors.Is(err, ErrCorrupt):
		if err := os.Rename(s.path, s.path+".corrupt"); err != nil {
			return fmt.Errorf("file kv: set aside corrupt document: %w", err)
		}
		data = map[string]string{}
	case err != nil:
		return err
	}
	data[key] = value
	return s.write(data)
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("file kv: read: %w", err)
	}
	if len(raw) == 0 {
		return map[string]string{}, nil
	}
	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("file kv: parse %s: %w: %w", s.path, ErrCorrupt, err)
	}
	return data, nil
}

func (s *FileStore) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("file kv: marshal: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("file kv: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file kv: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file kv: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file kv: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("file kv: replace: %w", err)
	}
	return nil
}
