// Package store provides persistence backends for translation offsets.
//
// Offsets are key-value pairs: the key is the draggable instance identifier,
// the value a serialized offset payload. Every backend also acts as a change
// notification channel so sibling instances sharing the store (including
// independent processes for the redis and mongo backends) learn about writes.
//
// # Backends
//
//   - memory: in-process map, for tests and single-view use
//   - file: JSON files under a config directory, for CLI use
//   - redis: GET/SET/DEL plus pub/sub, for cross-process sync
//   - mongo: one document per key plus change streams
//   - null: discards everything, for disabled persistence
//
// No locking is provided across instances; concurrent writers to the same key
// get last-write-wins semantics. Instances must use distinct identifiers to
// avoid offset collisions.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when an operation is attempted on a closed store.
var ErrClosed = errors.New("store closed")

// Event is a change notification: a key and its new value. Deletions are
// broadcast with an empty Value; subscribers treat payload-less events as
// skippable.
type Event struct {
	Key   string
	Value []byte
}

// Store is the interface for offset persistence backends.
type Store interface {
	// Get retrieves the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key and notifies subscribers.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key and notifies subscribers with an empty value.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Subscribe registers fn for change notifications. fn may be invoked from
	// another goroutine. The returned cancel removes exactly this
	// subscription; calling it more than once is safe.
	Subscribe(ctx context.Context, fn func(Event)) (cancel func(), err error)

	// Close releases backend resources. Subscriptions stop delivering.
	Close() error
}

// broadcaster fans change events out to in-process subscribers. It backs the
// memory and file stores, which have no external notification transport.
type broadcaster struct {
	mu   sync.Mutex
	subs map[int]func(Event)
	next int
}

// subscribe registers fn and returns an idempotent cancel.
func (b *broadcaster) subscribe(fn func(Event)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func(Event))
	}
	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// publish delivers ev to all current subscribers, synchronously and in no
// particular order.
func (b *broadcaster) publish(ev Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// clear drops all subscriptions.
func (b *broadcaster) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
}
