package effect

// StrokePosition places the stroke relative to the silhouette edge.
type StrokePosition string

const (
	StrokeOutside StrokePosition = "outside"
	StrokeCenter  StrokePosition = "center"
	StrokeInside  StrokePosition = "inside"
)

// Stroke outlines the layer's silhouette. It always renders topmost in the
// canonical effect order.
type Stroke struct {
	Common
	Color    string
	Size     int // stroke width in pixels
	Position StrokePosition
}

func (e *Stroke) Type() Type    { return TypeStroke }
func (e *Stroke) Base() *Common { return &e.Common }

// Margin depends on the stroke position: outside strokes need the full
// size on every side, centered strokes half the size plus one pixel of
// slack for rounding, inside strokes stay within the layer bounds.
func (e *Stroke) Margin() Margin {
	var m int
	switch e.Position {
	case StrokeOutside:
		m = clampNonNeg(e.Size)
	case StrokeCenter:
		m = clampNonNeg(e.Size/2 + 1)
	default: // StrokeInside and unset
		m = 0
	}
	return Margin{Left: m, Top: m, Right: m, Bottom: m}
}
