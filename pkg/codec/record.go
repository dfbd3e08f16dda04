// Package codec converts documents and layer nodes to and from their
// versioned plain-data representation.
//
// Each node serializes to a [LayerRecord] carrying a `_version` integer
// and a `_type` tag (distinct from the user-facing `type` field) that
// selects the deserialization constructor through a registry. Unknown
// tags are dropped silently so documents written by newer editors still
// load; sibling records deserialize normally.
//
// Records from older schema versions pass through a versioned migration
// pipeline before reconstruction: one pure step per version transition,
// each backfilling exactly the fields that version introduced. Migration
// is idempotent - running it on a current record is a no-op.
package codec

// CurrentVersion is the schema version written by this package.
//
// Version history:
//   - 1: initial schema (id, name, parentId, visible, opacity, blendMode,
//     locked, expanded, shapes, source)
//   - 2: adds offsetX/offsetY/rotation/scaleX/scaleY and the effects
//     array
const CurrentVersion = 2

// Type tags stored in the `_type` field. The tag selects the
// reconstruction constructor and is distinct from the user-facing `type`
// field.
const (
	TagLayer  = "Layer"
	TagGroup  = "LayerGroup"
	TagVector = "VectorLayer"
	TagSVG    = "SVGLayer"
)

// DocumentRecord is the persisted form of a complete document. The layer
// array is flat; its order is the document z-order (topmost last).
type DocumentRecord struct {
	ID      string        `json:"id" bson:"id"`
	Name    string        `json:"name" bson:"name"`
	Width   int           `json:"width" bson:"width"`
	Height  int           `json:"height" bson:"height"`
	Version int           `json:"version" bson:"version"`
	Layers  []LayerRecord `json:"layers" bson:"layers"`
}

// LayerRecord is the persisted form of a single node.
//
// Fields introduced after schema version 1 use pointer types so the
// migrator can distinguish "absent in a legacy record" from a stored
// zero value.
type LayerRecord struct {
	SchemaVersion int    `json:"_version" bson:"_version"`
	TypeTag       string `json:"_type" bson:"_type"`
	Type          string `json:"type" bson:"type"`

	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	ParentID string  `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Visible  bool    `json:"visible" bson:"visible"`
	Opacity  float64 `json:"opacity" bson:"opacity"`
	Blend    string  `json:"blendMode" bson:"blendMode"`
	Locked   bool    `json:"locked" bson:"locked"`

	// Expanded is present for groups only.
	Expanded *bool `json:"expanded,omitempty" bson:"expanded,omitempty"`

	// Introduced in schema version 2.
	OffsetX  *float64       `json:"offsetX,omitempty" bson:"offsetX,omitempty"`
	OffsetY  *float64       `json:"offsetY,omitempty" bson:"offsetY,omitempty"`
	Rotation *float64       `json:"rotation,omitempty" bson:"rotation,omitempty"`
	ScaleX   *float64       `json:"scaleX,omitempty" bson:"scaleX,omitempty"`
	ScaleY   *float64       `json:"scaleY,omitempty" bson:"scaleY,omitempty"`
	Effects  []EffectRecord `json:"effects,omitempty" bson:"effects,omitempty"`

	// Vector layer content.
	Shapes []ShapeRecord `json:"shapes,omitempty" bson:"shapes,omitempty"`

	// Embedded markup (svg layers) or inline fallback content. Large
	// payloads are stored out-of-band via SourceRef whenever a package
	// slot exists; Source is only inlined when no such slot is
	// available.
	Source    string `json:"source,omitempty" bson:"source,omitempty"`
	SourceRef string `json:"sourceRef,omitempty" bson:"sourceRef,omitempty"`
	Format    string `json:"format,omitempty" bson:"format,omitempty"`
}

// ShapeRecord is the persisted form of a vector shape.
type ShapeRecord struct {
	Kind        string  `json:"kind" bson:"kind"`
	X           float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y           float64 `json:"y,omitempty" bson:"y,omitempty"`
	W           float64 `json:"w,omitempty" bson:"w,omitempty"`
	H           float64 `json:"h,omitempty" bson:"h,omitempty"`
	X2          float64 `json:"x2,omitempty" bson:"x2,omitempty"`
	Y2          float64 `json:"y2,omitempty" bson:"y2,omitempty"`
	Path        string  `json:"path,omitempty" bson:"path,omitempty"`
	Fill        string  `json:"fill,omitempty" bson:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty" bson:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty" bson:"strokeWidth,omitempty"`
}

// EffectRecord is the persisted form of a single effect. The `type` tag
// selects the variant through the effect registry; unknown tags yield no
// effect.
//
// Legacy records may carry a deprecated `colorOpacity` or `fillOpacity`
// field; it is read as an alias for `opacity` when `opacity` itself is
// absent.
type EffectRecord struct {
	Type    string   `json:"type" bson:"type"`
	Enabled *bool    `json:"enabled,omitempty" bson:"enabled,omitempty"`
	Blend   string   `json:"blendMode,omitempty" bson:"blendMode,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`

	// Deprecated aliases for Opacity.
	ColorOpacity *float64 `json:"colorOpacity,omitempty" bson:"colorOpacity,omitempty"`
	FillOpacity  *float64 `json:"fillOpacity,omitempty" bson:"fillOpacity,omitempty"`

	Color   string `json:"color,omitempty" bson:"color,omitempty"`
	OffsetX int    `json:"offsetX,omitempty" bson:"offsetX,omitempty"`
	OffsetY int    `json:"offsetY,omitempty" bson:"offsetY,omitempty"`
	Blur    int    `json:"blur,omitempty" bson:"blur,omitempty"`
	Spread  int    `json:"spread,omitempty" bson:"spread,omitempty"`
	Choke   int    `json:"choke,omitempty" bson:"choke,omitempty"`

	// Glow parameters.
	GlowSource string `json:"glowSource,omitempty" bson:"glowSource,omitempty"`

	// Bevel/emboss parameters.
	BevelStyle     string  `json:"bevelStyle,omitempty" bson:"bevelStyle,omitempty"`
	Depth          int     `json:"depth,omitempty" bson:"depth,omitempty"`
	Size           int     `json:"size,omitempty" bson:"size,omitempty"`
	Soften         int     `json:"soften,omitempty" bson:"soften,omitempty"`
	Angle          float64 `json:"angle,omitempty" bson:"angle,omitempty"`
	Altitude       float64 `json:"altitude,omitempty" bson:"altitude,omitempty"`
	HighlightColor string  `json:"highlightColor,omitempty" bson:"highlightColor,omitempty"`
	ShadowColor    string  `json:"shadowColor,omitempty" bson:"shadowColor,omitempty"`

	// Satin parameters.
	Distance int  `json:"distance,omitempty" bson:"distance,omitempty"`
	Invert   bool `json:"invert,omitempty" bson:"invert,omitempty"`

	// Overlay parameters.
	Stops   []StopRecord `json:"stops,omitempty" bson:"stops,omitempty"`
	Scale   float64      `json:"scale,omitempty" bson:"scale,omitempty"`
	Reverse bool         `json:"reverse,omitempty" bson:"reverse,omitempty"`
	Pattern string       `json:"pattern,omitempty" bson:"pattern,omitempty"`

	// Stroke parameters.
	Position string `json:"position,omitempty" bson:"position,omitempty"`
}

// StopRecord is a persisted gradient stop.
type StopRecord struct {
	Offset float64 `json:"offset" bson:"offset"`
	Color  string  `json:"color" bson:"color"`
}
