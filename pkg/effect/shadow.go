package effect

// DropShadow renders a blurred, offset copy of the layer's silhouette
// beneath the layer.
type DropShadow struct {
	Common
	Color   string // hex color, e.g. "#000000"
	OffsetX int    // positive = shadow shifts right
	OffsetY int    // positive = shadow shifts down
	Blur    int    // blur radius in pixels
	Spread  int    // silhouette growth before blurring, may be negative
}

func (e *DropShadow) Type() Type    { return TypeDropShadow }
func (e *DropShadow) Base() *Common { return &e.Common }

// Margin computes the expansion as 3×blur + |spread| on each side, reduced
// on the side opposite the offset direction by the offset magnitude. The
// shadow moves toward the offset, so the away side needs less room, but
// never below zero.
func (e *DropShadow) Margin() Margin {
	m := 3*e.Blur + abs(e.Spread)
	return Margin{
		Left:   clampNonNeg(m - max(0, e.OffsetX)),
		Right:  clampNonNeg(m - max(0, -e.OffsetX)),
		Top:    clampNonNeg(m - max(0, e.OffsetY)),
		Bottom: clampNonNeg(m - max(0, -e.OffsetY)),
	}
}

// InnerShadow renders a shadow clipped to the inside of the layer's
// silhouette. It never extends the canvas.
type InnerShadow struct {
	Common
	Color   string
	OffsetX int
	OffsetY int
	Blur    int
	Choke   int // silhouette shrink before blurring
}

func (e *InnerShadow) Type() Type     { return TypeInnerShadow }
func (e *InnerShadow) Base() *Common  { return &e.Common }
func (e *InnerShadow) Margin() Margin { return Margin{} }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
