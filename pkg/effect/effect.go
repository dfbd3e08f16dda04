// Package effect models the visual effects attachable to layer nodes.
//
// Each effect type is a closed tagged variant implementing [Effect]. A node
// stores its effects in insertion order (author intent for same-type
// stacking), but rendering always proceeds in the fixed canonical order
// returned by [Ordered]: drop shadow → outer glow → color overlay →
// gradient overlay → pattern overlay → satin → bevel/emboss → inner shadow
// → inner glow → stroke. Disabled effects are skipped by the renderer but
// retained in the document.
//
// # Canvas expansion
//
// Every effect reports the extra margin its rendered output needs beyond
// the source layer's bounds via [Effect.Margin], so the compositor can
// allocate a sufficiently large buffer before invoking the external pixel
// backend. Effects clipped to the layer (inner shadow, inner glow, the
// overlays, satin, bevel/emboss) report a zero margin.
package effect

import "github.com/inklab/inkdoc/pkg/blend"

// Type identifies an effect variant. The value doubles as the
// serialization tag in effect records.
type Type string

const (
	TypeDropShadow      Type = "dropShadow"
	TypeInnerShadow     Type = "innerShadow"
	TypeOuterGlow       Type = "outerGlow"
	TypeInnerGlow       Type = "innerGlow"
	TypeBevelEmboss     Type = "bevelEmboss"
	TypeSatin           Type = "satin"
	TypeColorOverlay    Type = "colorOverlay"
	TypeGradientOverlay Type = "gradientOverlay"
	TypePatternOverlay  Type = "patternOverlay"
	TypeStroke          Type = "stroke"
)

// Margin is the non-negative canvas expansion an effect requires on each
// side of the source layer's bounds.
type Margin struct {
	Left, Top, Right, Bottom int
}

// Union returns the per-side maximum of m and other.
func (m Margin) Union(other Margin) Margin {
	return Margin{
		Left:   max(m.Left, other.Left),
		Top:    max(m.Top, other.Top),
		Right:  max(m.Right, other.Right),
		Bottom: max(m.Bottom, other.Bottom),
	}
}

// IsZero reports whether no expansion is required.
func (m Margin) IsZero() bool {
	return m == Margin{}
}

// Common holds the fields shared by every effect variant.
type Common struct {
	Enabled bool
	Blend   blend.Mode
	Opacity float64 // [0,1]
}

// Effect is the interface implemented by all effect variants.
type Effect interface {
	// Type returns the variant tag.
	Type() Type

	// Base returns the shared enabled/blend/opacity state. The pointer
	// aliases the variant's own storage, so callers may mutate through
	// it.
	Base() *Common

	// Margin reports the canvas expansion this effect requires.
	Margin() Margin
}

// DefaultCommon returns the common state applied to newly created effects:
// enabled, normal blending, fully opaque.
func DefaultCommon() Common {
	return Common{Enabled: true, Blend: blend.Normal, Opacity: 1.0}
}

// renderRank is the canonical bottom-to-top render position per type.
// Stroke is always topmost.
var renderRank = map[Type]int{
	TypeDropShadow:      0,
	TypeOuterGlow:       1,
	TypeColorOverlay:    2,
	TypeGradientOverlay: 3,
	TypePatternOverlay:  4,
	TypeSatin:           5,
	TypeBevelEmboss:     6,
	TypeInnerShadow:     7,
	TypeInnerGlow:       8,
	TypeStroke:          9,
}

// Rank returns the canonical render position of t (lower renders first).
// Unknown types sort after all known ones.
func Rank(t Type) int {
	if r, ok := renderRank[t]; ok {
		return r
	}
	return len(renderRank)
}

// Ordered returns effects sorted into canonical render order. The sort is
// stable: effects of the same type keep their insertion order. The input
// slice is not modified.
func Ordered(effects []Effect) []Effect {
	out := make([]Effect, len(effects))
	copy(out, effects)
	// Insertion sort keeps the implementation allocation-free and stable;
	// effect stacks are small.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && Rank(out[j].Type()) < Rank(out[j-1].Type()); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// StackMargin returns the union of margins over all enabled effects.
// Disabled effects contribute nothing.
func StackMargin(effects []Effect) Margin {
	var m Margin
	for _, e := range effects {
		if !e.Base().Enabled {
			continue
		}
		m = m.Union(e.Margin())
	}
	return m
}

// New returns a zero-parameter effect of the given type with default
// common state, or nil if t is not a known type. It is the constructor
// registry used by deserialization: an unknown tag yields nil and the
// caller drops the entry.
func New(t Type) Effect {
	ctor, ok := constructors[t]
	if !ok {
		return nil
	}
	return ctor()
}

// Known reports whether t is a registered effect type.
func Known(t Type) bool {
	_, ok := constructors[t]
	return ok
}

var constructors = map[Type]func() Effect{
	TypeDropShadow:      func() Effect { return &DropShadow{Common: DefaultCommon()} },
	TypeInnerShadow:     func() Effect { return &InnerShadow{Common: DefaultCommon()} },
	TypeOuterGlow:       func() Effect { return &OuterGlow{Common: DefaultCommon()} },
	TypeInnerGlow:       func() Effect { return &InnerGlow{Common: DefaultCommon()} },
	TypeBevelEmboss:     func() Effect { return &BevelEmboss{Common: DefaultCommon()} },
	TypeSatin:           func() Effect { return &Satin{Common: DefaultCommon()} },
	TypeColorOverlay:    func() Effect { return &ColorOverlay{Common: DefaultCommon()} },
	TypeGradientOverlay: func() Effect { return &GradientOverlay{Common: DefaultCommon()} },
	TypePatternOverlay:  func() Effect { return &PatternOverlay{Common: DefaultCommon()} },
	TypeStroke:          func() Effect { return &Stroke{Common: DefaultCommon(), Position: StrokeOutside} },
}
