// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about document mutations, render
// passes, and store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the core library free of observability-framework imports
// and avoids import cycles: hooks are registered by main, not by
// libraries.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// DocumentHooks receives events from document mutations.
type DocumentHooks interface {
	// OnMutate records a structural or property mutation. op names the
	// operation (e.g. "moveToGroup", "addEffect").
	OnMutate(ctx context.Context, docID, op string)
}

// RenderHooks receives events from compositor passes.
type RenderHooks interface {
	// OnRenderStart records the beginning of a render pass.
	OnRenderStart(ctx context.Context, docID string, nodeCount int)

	// OnRenderComplete records a finished render pass.
	OnRenderComplete(ctx context.Context, docID string, duration time.Duration, err error)
}

// StoreHooks receives events from document-store operations.
type StoreHooks interface {
	// OnSave records a persisted snapshot and its serialized size.
	OnSave(ctx context.Context, docID string, size int)

	// OnLoad records a load attempt. found is false for a miss.
	OnLoad(ctx context.Context, docID string, found bool)

	// OnDelete records a document removal.
	OnDelete(ctx context.Context, docID string)
}

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnMutate(context.Context, string, string) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                     {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, int)  {}
func (NoopStoreHooks) OnLoad(context.Context, string, bool) {}
func (NoopStoreHooks) OnDelete(context.Context, string)     {}

var (
	documentHooks DocumentHooks = NoopDocumentHooks{}
	renderHooks   RenderHooks   = NoopRenderHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	hooksMu       sync.RWMutex
)

// SetDocumentHooks registers custom document hooks.
// Call once at application startup before any document operations.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// Call once at application startup before any render operations.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// Call once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
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
	documentHooks = NoopDocumentHooks{}
	renderHooks = NoopRenderHooks{}
	storeHooks = NoopStoreHooks{}
}
