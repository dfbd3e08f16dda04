package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/inklab/inkdoc/pkg/codec"
	apperrors "github.com/inklab/inkdoc/pkg/errors"
)

// storeContract runs the behavior shared by all read-write backends.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	rec := codec.DocumentRecord{
		ID: "doc-1", Name: "first", Width: 10, Height: 10, Version: codec.CurrentVersion,
		Layers: []codec.LayerRecord{
			{SchemaVersion: codec.CurrentVersion, TypeTag: codec.TagLayer, ID: "a", Name: "a", Visible: true, Opacity: 1},
		},
	}

	if _, err := s.Load(ctx, "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "first" || len(got.Layers) != 1 || got.Layers[0].ID != "a" {
		t.Errorf("loaded record = %+v", got)
	}

	// Save replaces.
	rec.Name = "second"
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() overwrite error = %v", err)
	}
	got, _ = s.Load(ctx, "doc-1")
	if got.Name != "second" {
		t.Errorf("Name after overwrite = %q, want second", got.Name)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !slices.Contains(ids, "doc-1") {
		t.Errorf("List() = %v, want to contain doc-1", ids)
	}

	if err := s.Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeContract(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()
	storeContract(t, s)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "docs")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("store directory missing: %v", err)
	}
}

func TestFileStore_SanitizesHostileIDs(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	ctx := context.Background()
	rec := codec.DocumentRecord{ID: "../../escape"}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (file must land inside the store dir)", len(entries))
	}

	// The hostile ID round-trips through its sanitized file name.
	if _, err := s.Load(ctx, "../../escape"); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	_ = s.Save(context.Background(), codec.DocumentRecord{ID: "x"})

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStore_CorruptPayload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = s.Load(context.Background(), "bad")
	if err == nil {
		t.Fatal("Load(corrupt) error = nil")
	}
	// Backend failures carry the structured store code; a corrupt file is
	// not a miss.
	if !apperrors.Is(err, apperrors.ErrCodeStore) {
		t.Errorf("Load(corrupt) error = %v, want STORE_ERROR code", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("Load(corrupt) error = %v, must not be ErrNotFound", err)
	}
}

func TestNullStore(t *testing.T) {
	s := NewNullStore()
	ctx := context.Background()

	if err := s.Save(ctx, codec.DocumentRecord{ID: "x"}); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if _, err := s.Load(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
	ids, err := s.List(ctx)
	if err != nil || len(ids) != 0 {
		t.Errorf("List() = %v, %v, want empty", ids, err)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("snapshot-a"))
	b := Hash([]byte("snapshot-b"))

	if len(a) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(a))
	}
	if a == b {
		t.Error("different inputs hash identically")
	}
	if a != Hash([]byte("snapshot-a")) {
		t.Error("hash not deterministic")
	}
}
