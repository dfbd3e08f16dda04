package cli

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/inklab/inkdoc/pkg/errors"
)

func TestLoadRecord_MissingFile(t *testing.T) {
	_, err := loadRecord(filepath.Join(t.TempDir(), "ghost.json"))
	if err == nil {
		t.Fatal("loadRecord(missing) error = nil")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("loadRecord(missing) error = %v, want FILE_NOT_FOUND code", err)
	}
}

func TestLoadRecord_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := loadRecord(path)
	if err == nil {
		t.Fatal("loadRecord(malformed) error = nil")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("loadRecord(malformed) error = %v, want INVALID_FORMAT code", err)
	}
}

func TestWriteOutput_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "doc.svg")
	if err := writeOutput(path, []byte("<svg/>")); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("output = %q", data)
	}
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"doc.json", ".svg", "doc.svg"},
		{"dir/doc.json", ".tree.png", "dir/doc.tree.png"},
		{"noext", ".json", "noext.json"},
	}
	for _, tt := range tests {
		if got := replaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("replaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}
