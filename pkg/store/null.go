package store

import "context"

// NullStore is a no-op store that never persists anything and never
// notifies. Useful for testing or when persistence should be disabled
// entirely.
type NullStore struct{}

// NewNull creates a null store.
func NewNull() *NullStore {
	return &NullStore{}
}

// Get always reports an absent key.
func (s *NullStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (s *NullStore) Set(ctx context.Context, key string, value []byte) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Subscribe registers nothing; the cancel is a no-op.
func (s *NullStore) Subscribe(ctx context.Context, fn func(Event)) (func(), error) {
	return func() {}, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
