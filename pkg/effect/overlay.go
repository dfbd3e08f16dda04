package effect

// ColorOverlay fills the layer's silhouette with a flat color.
// Overlays are clipped to existing layer bounds and require no expansion.
type ColorOverlay struct {
	Common
	Color string
}

func (e *ColorOverlay) Type() Type     { return TypeColorOverlay }
func (e *ColorOverlay) Base() *Common  { return &e.Common }
func (e *ColorOverlay) Margin() Margin { return Margin{} }

// GradientStop is a single color stop of a gradient overlay.
type GradientStop struct {
	Offset float64 // position along the gradient in [0,1]
	Color  string
}

// GradientOverlay fills the layer's silhouette with a linear gradient.
type GradientOverlay struct {
	Common
	Stops   []GradientStop
	Angle   float64 // degrees, 0 = left-to-right
	Scale   float64 // gradient span relative to layer bounds, 1.0 = exact fit
	Reverse bool
}

func (e *GradientOverlay) Type() Type     { return TypeGradientOverlay }
func (e *GradientOverlay) Base() *Common  { return &e.Common }
func (e *GradientOverlay) Margin() Margin { return Margin{} }

// PatternOverlay tiles a pattern across the layer's silhouette. The
// pattern pixels live out-of-band; Pattern references them by name.
type PatternOverlay struct {
	Common
	Pattern string  // external pattern reference
	Scale   float64 // tile scale, 1.0 = native size
}

func (e *PatternOverlay) Type() Type     { return TypePatternOverlay }
func (e *PatternOverlay) Base() *Common  { return &e.Common }
func (e *PatternOverlay) Margin() Margin { return Margin{} }
