package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists offsets as files in a directory, one file per key.
// Intended for CLI use where offsets should survive restarts. Change
// notifications are in-process only; two processes sharing a directory do not
// see each other's writes until they re-read.
type FileStore struct {
	mu     sync.RWMutex
	dir    string
	closed bool
	b      broadcaster
}

// NewFile creates a file-based store rooted at dir.
// If dir is empty, defaults to ~/.config/simpledraggable/offsets/
func NewFile(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "simpledraggable", "offsets")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create offset dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path converts a key to a file path. Keys are validated identifiers, so they
// contain no path separators.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get retrieves the value for key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read offset file: %w", err)
	}
	return data, true, nil
}

// Set stores value under key and notifies in-process subscribers.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := os.WriteFile(s.path(key), value, 0600)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("write offset file: %w", err)
	}

	s.b.publish(Event{Key: key, Value: value})
	return nil
}

// Delete removes key's file and notifies in-process subscribers.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := os.Remove(s.path(key))
	s.mu.Unlock()
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove offset file: %w", err)
	}

	s.b.publish(Event{Key: key})
	return nil
}

// Subscribe registers fn for in-process change notifications.
func (s *FileStore) Subscribe(ctx context.Context, fn func(Event)) (func(), error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	return s.b.subscribe(fn), nil
}

// Close drops subscriptions. Files stay on disk.
func (s *FileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.b.clear()
	return nil
}

// Path returns the directory backing this store.
func (s *FileStore) Path() string {
	return s.dir
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
