// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about drag sessions, offset sync, and
// store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDragHooks(&myDragHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Drag().OnSessionStart(id, offset)
//	// ... drag runs ...
//	observability.Drag().OnSessionEnd(id, offset, duration)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Drag Hooks
// =============================================================================

// DragHooks receives events from drag sessions. Coordinates are the running
// translation offset in pixels.
type DragHooks interface {
	// OnSessionStart records a press that started a drag session.
	OnSessionStart(id string, x, y float64)

	// OnSessionMove records one clamped pointer-move step.
	OnSessionMove(id string, x, y float64, clamped bool)

	// OnSessionEnd records the release that ended a session.
	OnSessionEnd(id string, x, y float64, duration time.Duration)
}

// =============================================================================
// Sync Hooks
// =============================================================================

// SyncHooks receives events from offset reconciliation.
type SyncHooks interface {
	// OnRestore records an offset restored at enable time.
	// storedX/storedY are the parsed values, x/y the reclamped result.
	OnRestore(id string, storedX, storedY, x, y float64)

	// OnNotify records a processed cross-view change notification.
	OnNotify(id string, x, y float64)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from persistence operations.
type StoreHooks interface {
	// OnGet records a read, with whether the key was present.
	OnGet(key string, found bool)

	// OnSet records a write.
	OnSet(key string, size int)

	// OnDelete records a removal.
	OnDelete(key string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDragHooks is a no-op implementation of DragHooks.
type NoopDragHooks struct{}

func (NoopDragHooks) OnSessionStart(string, float64, float64)              {}
func (NoopDragHooks) OnSessionMove(string, float64, float64, bool)         {}
func (NoopDragHooks) OnSessionEnd(string, float64, float64, time.Duration) {}

// NoopSyncHooks is a no-op implementation of SyncHooks.
type NoopSyncHooks struct{}

func (NoopSyncHooks) OnRestore(string, float64, float64, float64, float64) {}
func (NoopSyncHooks) OnNotify(string, float64, float64)                    {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnGet(string, bool) {}
func (NoopStoreHooks) OnSet(string, int)  {}
func (NoopStoreHooks) OnDelete(string)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dragHooks  DragHooks  = NoopDragHooks{}
	syncHooks  SyncHooks  = NoopSyncHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetDragHooks registers custom drag hooks.
// This should be called once at application startup before any drag activity.
func SetDragHooks(h DragHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dragHooks = h
	}
}

// SetSyncHooks registers custom sync hooks.
// This should be called once at application startup before any sync activity.
func SetSyncHooks(h SyncHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		syncHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Drag returns the registered drag hooks.
func Drag() DragHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dragHooks
}

// Sync returns the registered sync hooks.
func Sync() SyncHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return syncHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dragHooks = NoopDragHooks{}
	syncHooks = NoopSyncHooks{}
	storeHooks = NoopStoreHooks{}
}
