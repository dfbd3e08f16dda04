package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/inklab/inkdoc/pkg/codec"
	apperrors "github.com/inklab/inkdoc/pkg/errors"
	"github.com/inklab/inkdoc/pkg/observability"
)

// FileStore persists documents as JSON files in a directory, one file
// per document ID. Intended for CLI usage.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "create store dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the snapshot. The write goes through a temp file and
// rename so a crash never leaves a half-written document.
func (s *FileStore) Save(ctx context.Context, rec codec.DocumentRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "encode %s", rec.ID)
	}

	path := s.path(rec.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "write %s", rec.ID)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "write %s", rec.ID)
	}

	observability.Store().OnSave(ctx, rec.ID, len(data))
	return nil
}

// Load retrieves a snapshot by ID.
func (s *FileStore) Load(ctx context.Context, id string) (codec.DocumentRecord, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		observability.Store().OnLoad(ctx, id, false)
		return codec.DocumentRecord{}, ErrNotFound
	}
	if err != nil {
		return codec.DocumentRecord{}, apperrors.Wrap(apperrors.ErrCodeStore, err, "read %s", id)
	}

	var rec codec.DocumentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return codec.DocumentRecord{}, apperrors.Wrap(apperrors.ErrCodeStore, err, "decode %s", id)
	}
	observability.Store().OnLoad(ctx, id, true)
	return rec, nil
}

// Delete removes a stored document.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err == nil {
		observability.Store().OnDelete(ctx, id)
	}
	return err
}

// List returns the IDs of all stored documents.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "list store dir")
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Close does nothing for file stores.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(id string) string {
	// Document IDs are UUIDs; sanitize anyway so a hostile ID cannot
	// escape the store directory.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
	return filepath.Join(s.dir, safe+".json")
}

var _ Store = (*FileStore)(nil)
