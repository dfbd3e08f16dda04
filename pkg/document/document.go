// Package document implements the layered document model: a mutable tree
// of drawable layers and groups held in a flat arena, with derived
// (inherited) visibility, opacity and lock state.
//
// The structural relation is a single ParentID back-reference per node;
// child membership and sibling order are always derived from the flat
// document sequence, never stored. This keeps serialization, reordering
// and cycle checks simple and avoids cyclic ownership graphs.
//
// # Error model
//
// Structurally invalid operations (self-parenting, cycle-forming
// reparents, reparenting under a non-group) are rejected with a sentinel
// error and leave the tree untouched. Nothing in this package panics on
// user input.
package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/inklab/inkdoc/pkg/observability"
)

// Document is a complete editable document: canvas dimensions, a layer
// stack, and a persistence schema version. Every structural or property
// edit marks the document modified.
type Document struct {
	ID     string
	Name   string
	Width  int
	Height int

	// Version is the persistence schema version the document was loaded
	// from. New documents carry the current version; see pkg/codec.
	Version int

	stack *Stack
	dirty bool
}

// New creates an empty document with the given name and canvas size.
// The document starts clean.
func New(name string, width, height int) *Document {
	d := &Document{
		ID:     uuid.NewString(),
		Name:   name,
		Width:  width,
		Height: height,
		stack:  NewStack(),
	}
	d.stack.OnMutate(d.markDirty)
	return d
}

// FromStack wraps an existing stack (deserialization) into a document.
// The document starts clean; the mutation hook is installed so later
// edits mark it dirty.
func FromStack(id, name string, width, height, version int, s *Stack) *Document {
	if id == "" {
		id = uuid.NewString()
	}
	d := &Document{
		ID:      id,
		Name:    name,
		Width:   width,
		Height:  height,
		Version: version,
		stack:   s,
	}
	s.OnMutate(d.markDirty)
	return d
}

// Stack returns the document's layer stack. All structural access goes
// through it; no other component mutates the node collection directly.
func (d *Document) Stack() *Stack { return d.stack }

// Dirty reports whether the document has unsaved modifications.
func (d *Document) Dirty() bool { return d.dirty }

// MarkSaved clears the modified flag. Persistence calls this after the
// serialized snapshot has been handed to the store.
func (d *Document) MarkSaved() { d.dirty = false }

// MarkDirty marks the document modified. Exposed for edits that bypass
// the stack.
func (d *Document) MarkDirty() { d.markDirty("markDirty") }

// markDirty flags the document modified and reports the mutation to the
// registered observability hooks.
func (d *Document) markDirty(op string) {
	d.dirty = true
	observability.Document().OnMutate(context.Background(), d.ID, op)
}

// Resize changes the canvas dimensions.
func (d *Document) Resize(width, height int) {
	d.Width, d.Height = width, height
	d.markDirty("resize")
}

// Rename changes the document's display name.
func (d *Document) Rename(name string) {
	d.Name = name
	d.markDirty("renameDocument")
}
