// Package store persists serialized document snapshots.
//
// A [Store] receives complete [codec.DocumentRecord] snapshots - the
// caller serializes synchronously before handing the record over, so an
// in-flight save can never observe later mutations. Backends:
//
//   - File: JSON documents in a directory, for CLI usage
//   - Memory: in-process map, for tests and the dev server
//   - Redis: shared cache-style storage for multi-instance deployments
//   - Mongo: durable document storage
//   - Null: discards everything, for disabling persistence
package store

import (
	"context"
	"errors"

	"github.com/inklab/inkdoc/pkg/codec"
)

// ErrNotFound is returned by [Store.Load] and [Store.Delete] when no
// document with the given ID exists.
var ErrNotFound = errors.New("document not found")

// Store persists document snapshots keyed by document ID.
type Store interface {
	// Save writes a snapshot, replacing any previous version.
	Save(ctx context.Context, rec codec.DocumentRecord) error

	// Load retrieves a snapshot. Returns ErrNotFound for a missing ID.
	Load(ctx context.Context, id string) (codec.DocumentRecord, error)

	// Delete removes a snapshot. Returns ErrNotFound for a missing ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored documents.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// NullStore discards all writes and never finds anything. Useful for
// disabling persistence in tests.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store { return &NullStore{} }

func (s *NullStore) Save(ctx context.Context, rec codec.DocumentRecord) error { return nil }

func (s *NullStore) Load(ctx context.Context, id string) (codec.DocumentRecord, error) {
	return codec.DocumentRecord{}, ErrNotFound
}

func (s *NullStore) Delete(ctx context.Context, id string) error { return nil }

func (s *NullStore) List(ctx context.Context) ([]string, error) { return nil, nil }

func (s *NullStore) Close() error { return nil }

var _ Store = (*NullStore)(nil)
