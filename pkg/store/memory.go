package store

import (
	"context"
	"sync"

	"github.com/inklab/inkdoc/pkg/codec"
	"github.com/inklab/inkdoc/pkg/observability"
)

// MemoryStore keeps documents in an in-process map. Intended for tests
// and the development server; contents are lost on exit.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]codec.DocumentRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]codec.DocumentRecord)}
}

func (s *MemoryStore) Save(ctx context.Context, rec codec.DocumentRecord) error {
	s.mu.Lock()
	s.docs[rec.ID] = rec
	s.mu.Unlock()
	observability.Store().OnSave(ctx, rec.ID, 0)
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (codec.DocumentRecord, error) {
	s.mu.RLock()
	rec, ok := s.docs[id]
	s.mu.RUnlock()
	observability.Store().OnLoad(ctx, id, ok)
	if !ok {
		return codec.DocumentRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	observability.Store().OnDelete(ctx, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
