package codec

import (
	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/document"
)

// kindTags maps node kinds to their `_type` constructor tag.
var kindTags = map[document.Kind]string{
	document.KindLayer:  TagLayer,
	document.KindGroup:  TagGroup,
	document.KindVector: TagVector,
	document.KindSVG:    TagSVG,
}

// nodeDecoders is the dispatch table from the `_type` tag to the node
// constructor. Unknown tags yield no node; the caller drops the record
// and keeps its siblings.
var nodeDecoders = map[string]func(LayerRecord) *document.Node{
	TagLayer:  func(r LayerRecord) *document.Node { return baseNode(r, document.KindLayer) },
	TagGroup:  decodeGroup,
	TagVector: decodeVector,
	TagSVG: func(r LayerRecord) *document.Node {
		n := baseNode(r, document.KindSVG)
		n.Source = r.Source
		n.SourceRef = r.SourceRef
		n.Format = r.Format
		return n
	},
}

func decodeGroup(r LayerRecord) *document.Node {
	n := baseNode(r, document.KindGroup)
	n.Expanded = true
	if r.Expanded != nil {
		n.Expanded = *r.Expanded
	}
	return n
}

func decodeVector(r LayerRecord) *document.Node {
	n := baseNode(r, document.KindVector)
	n.Shapes = make([]document.Shape, len(r.Shapes))
	for i, sr := range r.Shapes {
		n.Shapes[i] = document.Shape{
			Kind:        document.ShapeKind(sr.Kind),
			X:           sr.X,
			Y:           sr.Y,
			W:           sr.W,
			H:           sr.H,
			X2:          sr.X2,
			Y2:          sr.Y2,
			Path:        sr.Path,
			Fill:        sr.Fill,
			Stroke:      sr.Stroke,
			StrokeWidth: sr.StrokeWidth,
		}
	}
	return n
}

// baseNode reconstructs the fields shared by every node kind. The record
// must already be migrated to the current schema version, so the pointer
// fields are non-nil.
func baseNode(r LayerRecord, kind document.Kind) *document.Node {
	n := &document.Node{
		ID:        r.ID,
		Kind:      kind,
		Name:      r.Name,
		ParentID:  r.ParentID,
		Visible:   r.Visible,
		Locked:    r.Locked,
		Opacity:   r.Opacity,
		Blend:     blend.Normalize(blend.Mode(r.Blend)),
		Effects:   DecodeEffects(r.Effects),
		Source:    r.Source,
		SourceRef: r.SourceRef,
		Format:    r.Format,
		ScaleX:    1.0,
		ScaleY:    1.0,
	}
	if kind == document.KindGroup && blend.Mode(r.Blend) == blend.Passthrough {
		n.Blend = blend.Passthrough
	}
	if r.OffsetX != nil {
		n.OffsetX = *r.OffsetX
	}
	if r.OffsetY != nil {
		n.OffsetY = *r.OffsetY
	}
	if r.Rotation != nil {
		n.Rotation = *r.Rotation
	}
	if r.ScaleX != nil {
		n.ScaleX = *r.ScaleX
	}
	if r.ScaleY != nil {
		n.ScaleY = *r.ScaleY
	}
	return n
}

// DecodeNode reconstructs a node from its record, migrating the record
// first if it predates the current schema. Unknown `_type` tags return
// nil.
func DecodeNode(r LayerRecord) *document.Node {
	r = MigrateLayer(r)
	dec, ok := nodeDecoders[r.TypeTag]
	if !ok {
		return nil
	}
	return dec(r)
}

// EncodeNode converts a node to its current-version record form.
func EncodeNode(n *document.Node) LayerRecord {
	r := LayerRecord{
		SchemaVersion: CurrentVersion,
		TypeTag:       kindTags[n.Kind],
		Type:          string(n.Kind),
		ID:            n.ID,
		Name:          n.Name,
		ParentID:      n.ParentID,
		Visible:       n.Visible,
		Opacity:       n.Opacity,
		Blend:         string(n.Blend),
		Locked:        n.Locked,
		OffsetX:       ptr(n.OffsetX),
		OffsetY:       ptr(n.OffsetY),
		Rotation:      ptr(n.Rotation),
		ScaleX:        ptr(n.ScaleX),
		ScaleY:        ptr(n.ScaleY),
		Effects:       EncodeEffects(n.Effects),
		Format:        n.Format,
		SourceRef:     n.SourceRef,
	}
	if n.IsGroup() {
		r.Expanded = ptr(n.Expanded)
	}
	if n.Kind == document.KindVector {
		r.Shapes = make([]ShapeRecord, len(n.Shapes))
		for i, sh := range n.Shapes {
			r.Shapes[i] = ShapeRecord{
				Kind:        string(sh.Kind),
				X:           sh.X,
				Y:           sh.Y,
				W:           sh.W,
				H:           sh.H,
				X2:          sh.X2,
				Y2:          sh.Y2,
				Path:        sh.Path,
				Fill:        sh.Fill,
				Stroke:      sh.Stroke,
				StrokeWidth: sh.StrokeWidth,
			}
		}
	}
	// Inline content only when no out-of-band slot is in use.
	if n.SourceRef == "" {
		r.Source = n.Source
	}
	return r
}
