package effect

// BevelStyle selects the bevel/emboss shading variant.
type BevelStyle string

const (
	BevelInner    BevelStyle = "inner"
	BevelOuter    BevelStyle = "outer"
	BevelEmbossed BevelStyle = "emboss"
	BevelPillow   BevelStyle = "pillow"
)

// BevelEmboss shades the layer's silhouette to simulate depth. Shading is
// clipped to the layer bounds, so no canvas expansion is required.
type BevelEmboss struct {
	Common
	Style          BevelStyle
	Depth          int     // shading intensity in percent
	Size           int     // bevel width in pixels
	Soften         int     // post-shading blur in pixels
	Angle          float64 // light direction in degrees
	Altitude       float64 // light elevation in degrees
	HighlightColor string
	ShadowColor    string
}

func (e *BevelEmboss) Type() Type     { return TypeBevelEmboss }
func (e *BevelEmboss) Base() *Common  { return &e.Common }
func (e *BevelEmboss) Margin() Margin { return Margin{} }

// Satin drapes an interior sheen across the layer's silhouette.
type Satin struct {
	Common
	Color    string
	Angle    float64
	Distance int
	Size     int
	Invert   bool
}

func (e *Satin) Type() Type     { return TypeSatin }
func (e *Satin) Base() *Common  { return &e.Common }
func (e *Satin) Margin() Margin { return Margin{} }
