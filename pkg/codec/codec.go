package codec

import (
	"encoding/json"

	"github.com/inklab/inkdoc/pkg/document"
)

// EncodeDocument snapshots a document into its persisted record form.
// The snapshot is complete and independent of the live tree: later
// mutations cannot affect it, so callers may hand it to asynchronous
// packaging safely.
func EncodeDocument(d *document.Document) DocumentRecord {
	nodes := d.Stack().Nodes()
	r := DocumentRecord{
		ID:      d.ID,
		Name:    d.Name,
		Width:   d.Width,
		Height:  d.Height,
		Version: CurrentVersion,
		Layers:  make([]LayerRecord, 0, len(nodes)),
	}
	for _, n := range nodes {
		r.Layers = append(r.Layers, EncodeNode(n))
	}
	return r
}

// DecodeDocument reconstructs a document from its record form. Legacy
// records are migrated first. Records with unrecognized `_type` tags are
// dropped; dangling parent references are repaired to root. The returned
// document is clean (not dirty).
func DecodeDocument(r DocumentRecord) *document.Document {
	r = MigrateDocument(r)

	stack := document.NewStack()
	for _, lr := range r.Layers {
		if n := DecodeNode(lr); n != nil {
			stack.Attach(n)
		}
	}
	stack.Repair()

	return document.FromStack(r.ID, r.Name, r.Width, r.Height, r.Version, stack)
}

// Marshal serializes a document record to JSON.
func Marshal(r DocumentRecord) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Unmarshal parses a JSON document record.
func Unmarshal(data []byte) (DocumentRecord, error) {
	var r DocumentRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return DocumentRecord{}, err
	}
	return r, nil
}
