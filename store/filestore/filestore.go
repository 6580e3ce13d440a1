// Package filestore keeps the persisted session record in a YAML file.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-auth-session/store"
	"gopkg.in/yaml.v3"
)

var _ store.Repo = (*Store)(nil)

// Store reads the whole file on every Get and rewrites it on every change,
// so other processes see updates on their next read.
type Store struct {
	path string
	lock sync.Mutex
}

// New returns a store backed by path. The file and its directory are created
// on first write.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Get(key string) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *Store) Delete(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *Store) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("filestore: parse %s: %w", s.path, err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

func (s *Store) save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("filestore: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("filestore: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("filestore: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("filestore: rename: %w", err)
	}
	return nil
}
