package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inklab/inkdoc/pkg/codec"
	"github.com/inklab/inkdoc/pkg/document"
	apperrors "github.com/inklab/inkdoc/pkg/errors"
)

// loadRecord reads and parses a document file without migrating it, so
// callers can see the on-disk schema version.
func loadRecord(path string) (codec.DocumentRecord, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return codec.DocumentRecord{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "no such file: %s", path)
	}
	if err != nil {
		return codec.DocumentRecord{}, fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := codec.Unmarshal(data)
	if err != nil {
		return codec.DocumentRecord{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return rec, nil
}

// loadDocument reads a document file and reconstructs the live tree,
// migrating legacy records along the way.
func loadDocument(path string) (*document.Document, error) {
	rec, err := loadRecord(path)
	if err != nil {
		return nil, err
	}
	return codec.DecodeDocument(rec), nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// replaceExt swaps the extension of path for ext (with leading dot).
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
