package effect

// OuterGlow renders a halo extending outward from the layer's silhouette.
type OuterGlow struct {
	Common
	Color  string
	Blur   int
	Spread int // non-negative silhouette growth
}

func (e *OuterGlow) Type() Type    { return TypeOuterGlow }
func (e *OuterGlow) Base() *Common { return &e.Common }

// Margin is 3×blur + spread uniformly on all sides.
func (e *OuterGlow) Margin() Margin {
	m := clampNonNeg(3*e.Blur + e.Spread)
	return Margin{Left: m, Top: m, Right: m, Bottom: m}
}

// GlowSource selects where an inner glow emanates from.
type GlowSource string

const (
	// GlowEdge grows the glow inward from the silhouette edge.
	GlowEdge GlowSource = "edge"
	// GlowCenter grows the glow outward from the silhouette center.
	GlowCenter GlowSource = "center"
)

// InnerGlow renders a glow clipped to the inside of the layer's
// silhouette.
type InnerGlow struct {
	Common
	Color  string
	Blur   int
	Choke  int
	Source GlowSource
}

func (e *InnerGlow) Type() Type     { return TypeInnerGlow }
func (e *InnerGlow) Base() *Common  { return &e.Common }
func (e *InnerGlow) Margin() Margin { return Margin{} }
