package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process store. Notifications reach every subscriber in
// the same process, which makes it the default for tests and the demo.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
	b      broadcaster
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get retrieves the value for key.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}
	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate stored state.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores value under key and notifies subscribers.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	s.mu.Unlock()

	s.b.publish(Event{Key: key, Value: stored})
	return nil
}

// Delete removes key and notifies subscribers with an empty value.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed {
		s.b.publish(Event{Key: key})
	}
	return nil
}

// Subscribe registers fn for change notifications.
func (s *MemoryStore) Subscribe(ctx context.Context, fn func(Event)) (func(), error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	return s.b.subscribe(fn), nil
}

// Close drops all data and subscriptions.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.data = nil
	s.mu.Unlock()

	s.b.clear()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
