package document

import (
	"github.com/google/uuid"

	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/effect"
)

// Kind distinguishes the node variants held by a [Stack].
type Kind string

const (
	// KindLayer is a content-bearing raster layer.
	KindLayer Kind = "layer"
	// KindGroup is a container for other nodes.
	KindGroup Kind = "group"
	// KindVector is a layer whose content is a list of editable shapes.
	KindVector Kind = "vector"
	// KindSVG is a layer whose content is embedded SVG markup.
	KindSVG Kind = "svg"
)

// IsGroup reports whether k is the group kind.
func (k Kind) IsGroup() bool { return k == KindGroup }

// ShapeKind identifies a vector shape primitive.
type ShapeKind string

const (
	ShapeRect    ShapeKind = "rect"
	ShapeEllipse ShapeKind = "ellipse"
	ShapeLine    ShapeKind = "line"
	ShapePath    ShapeKind = "path"
)

// Shape is a single vector primitive on a vector layer. Path data uses
// SVG path syntax.
type Shape struct {
	Kind        ShapeKind
	X, Y        float64
	W, H        float64
	X2, Y2      float64 // line endpoint
	Path        string  // SVG path data for ShapePath
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Node is a single entry in a layer stack: a drawable layer or a group.
// Nodes are owned exclusively by their Stack; all structural state
// (parentage, z-order) is mutated through Stack operations only.
//
// The parent relation is the sole structural link. There is no embedded
// child list; membership is derived by scanning for a matching ParentID.
type Node struct {
	ID      string     // opaque unique identifier, immutable after creation
	Kind    Kind       // variant tag
	Name    string     // mutable display name
	Visible bool       // own-state only; see [Stack.EffectivelyVisible]
	Locked  bool       // own-state only; see [Stack.EffectivelyLocked]
	Opacity float64    // own-state in [0,1]; see [Stack.EffectiveOpacity]
	Blend   blend.Mode // groups additionally support blend.Passthrough

	// ParentID references the owning group, or "" at document root.
	ParentID string

	// Expanded is the persisted collapse state of a group in the layer
	// panel. It has no rendering effect.
	Expanded bool

	// Effects holds the node's effect stack in insertion order. Render
	// order is normalized separately; see [effect.Ordered].
	Effects []effect.Effect

	// Content offset and transform, used by vector/svg layers and the
	// SVG bake envelope.
	OffsetX, OffsetY float64
	Rotation         float64 // degrees
	ScaleX, ScaleY   float64 // 1.0 = unscaled

	// Shapes is the content of a vector layer.
	Shapes []Shape

	// Source is embedded SVG markup for svg layers, or an external
	// image-file reference for raster layers when SourceRef is unset.
	Source string

	// SourceRef points at an out-of-band payload (e.g. a sibling file in
	// a document package). When set, Source is not serialized inline.
	SourceRef string

	// Format tags the out-of-band payload ("png", "svg", ...).
	Format string
}

// IsGroup reports whether the node is a group.
func (n *Node) IsGroup() bool { return n.Kind.IsGroup() }

// Passthrough reports whether the node is a passthrough group.
func (n *Node) Passthrough() bool {
	return n.IsGroup() && n.Blend == blend.Passthrough
}

// newID returns a fresh opaque node identifier.
func newID() string { return uuid.NewString() }

// newGroup builds a group node with its defaults: visible, unlocked,
// fully opaque, passthrough blending, expanded.
func newGroup(name string) *Node {
	return &Node{
		ID:       newID(),
		Kind:     KindGroup,
		Name:     name,
		Visible:  true,
		Opacity:  1.0,
		Blend:    blend.Passthrough,
		Expanded: true,
		ScaleX:   1.0,
		ScaleY:   1.0,
	}
}

// newLayer builds a content layer with the same defaults as a group
// except normal blending.
func newLayer(name string, kind Kind) *Node {
	return &Node{
		ID:      newID(),
		Kind:    kind,
		Name:    name,
		Visible: true,
		Opacity: 1.0,
		Blend:   blend.Normal,
		ScaleX:  1.0,
		ScaleY:  1.0,
	}
}
