package codec

import (
	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/effect"
)

// effectDecoders is the dispatch table from the `type` tag to the
// variant constructor. An absent tag means the record is dropped.
var effectDecoders = map[effect.Type]func(EffectRecord) effect.Effect{
	effect.TypeDropShadow: func(r EffectRecord) effect.Effect {
		return &effect.DropShadow{
			Common:  commonFromRecord(r),
			Color:   r.Color,
			OffsetX: r.OffsetX,
			OffsetY: r.OffsetY,
			Blur:    r.Blur,
			Spread:  r.Spread,
		}
	},
	effect.TypeInnerShadow: func(r EffectRecord) effect.Effect {
		return &effect.InnerShadow{
			Common:  commonFromRecord(r),
			Color:   r.Color,
			OffsetX: r.OffsetX,
			OffsetY: r.OffsetY,
			Blur:    r.Blur,
			Choke:   r.Choke,
		}
	},
	effect.TypeOuterGlow: func(r EffectRecord) effect.Effect {
		return &effect.OuterGlow{
			Common: commonFromRecord(r),
			Color:  r.Color,
			Blur:   r.Blur,
			Spread: r.Spread,
		}
	},
	effect.TypeInnerGlow: func(r EffectRecord) effect.Effect {
		return &effect.InnerGlow{
			Common: commonFromRecord(r),
			Color:  r.Color,
			Blur:   r.Blur,
			Choke:  r.Choke,
			Source: effect.GlowSource(r.GlowSource),
		}
	},
	effect.TypeBevelEmboss: func(r EffectRecord) effect.Effect {
		return &effect.BevelEmboss{
			Common:         commonFromRecord(r),
			Style:          effect.BevelStyle(r.BevelStyle),
			Depth:          r.Depth,
			Size:           r.Size,
			Soften:         r.Soften,
			Angle:          r.Angle,
			Altitude:       r.Altitude,
			HighlightColor: r.HighlightColor,
			ShadowColor:    r.ShadowColor,
		}
	},
	effect.TypeSatin: func(r EffectRecord) effect.Effect {
		return &effect.Satin{
			Common:   commonFromRecord(r),
			Color:    r.Color,
			Angle:    r.Angle,
			Distance: r.Distance,
			Size:     r.Size,
			Invert:   r.Invert,
		}
	},
	effect.TypeColorOverlay: func(r EffectRecord) effect.Effect {
		return &effect.ColorOverlay{
			Common: commonFromRecord(r),
			Color:  r.Color,
		}
	},
	effect.TypeGradientOverlay: func(r EffectRecord) effect.Effect {
		stops := make([]effect.GradientStop, len(r.Stops))
		for i, st := range r.Stops {
			stops[i] = effect.GradientStop{Offset: st.Offset, Color: st.Color}
		}
		return &effect.GradientOverlay{
			Common:  commonFromRecord(r),
			Stops:   stops,
			Angle:   r.Angle,
			Scale:   r.Scale,
			Reverse: r.Reverse,
		}
	},
	effect.TypePatternOverlay: func(r EffectRecord) effect.Effect {
		return &effect.PatternOverlay{
			Common:  commonFromRecord(r),
			Pattern: r.Pattern,
			Scale:   r.Scale,
		}
	},
	effect.TypeStroke: func(r EffectRecord) effect.Effect {
		pos := effect.StrokePosition(r.Position)
		if pos == "" {
			pos = effect.StrokeOutside
		}
		return &effect.Stroke{
			Common:   commonFromRecord(r),
			Color:    r.Color,
			Size:     r.Size,
			Position: pos,
		}
	},
}

// DecodeEffect reconstructs an effect from its record. Unknown type tags
// return nil; the caller drops the entry and keeps its siblings.
func DecodeEffect(r EffectRecord) effect.Effect {
	dec, ok := effectDecoders[effect.Type(r.Type)]
	if !ok {
		return nil
	}
	return dec(r)
}

// DecodeEffects reconstructs an effect list, silently dropping entries
// with unrecognized tags.
func DecodeEffects(records []EffectRecord) []effect.Effect {
	var out []effect.Effect
	for _, r := range records {
		if e := DecodeEffect(r); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// commonFromRecord resolves the shared effect state, applying schema
// defaults for absent fields: enabled=true, normal blend, opacity=1.
// The deprecated colorOpacity/fillOpacity aliases are honored when the
// opacity field itself is absent.
func commonFromRecord(r EffectRecord) effect.Common {
	c := effect.DefaultCommon()
	if r.Enabled != nil {
		c.Enabled = *r.Enabled
	}
	if r.Blend != "" {
		c.Blend = blend.Normalize(blend.Mode(r.Blend))
	}
	switch {
	case r.Opacity != nil:
		c.Opacity = *r.Opacity
	case r.ColorOpacity != nil:
		c.Opacity = *r.ColorOpacity
	case r.FillOpacity != nil:
		c.Opacity = *r.FillOpacity
	}
	return c
}

// EncodeEffect converts an effect to its record form.
func EncodeEffect(e effect.Effect) EffectRecord {
	c := e.Base()
	r := EffectRecord{
		Type:    string(e.Type()),
		Enabled: ptr(c.Enabled),
		Blend:   string(c.Blend),
		Opacity: ptr(c.Opacity),
	}

	switch v := e.(type) {
	case *effect.DropShadow:
		r.Color, r.OffsetX, r.OffsetY, r.Blur, r.Spread = v.Color, v.OffsetX, v.OffsetY, v.Blur, v.Spread
	case *effect.InnerShadow:
		r.Color, r.OffsetX, r.OffsetY, r.Blur, r.Choke = v.Color, v.OffsetX, v.OffsetY, v.Blur, v.Choke
	case *effect.OuterGlow:
		r.Color, r.Blur, r.Spread = v.Color, v.Blur, v.Spread
	case *effect.InnerGlow:
		r.Color, r.Blur, r.Choke, r.GlowSource = v.Color, v.Blur, v.Choke, string(v.Source)
	case *effect.BevelEmboss:
		r.BevelStyle = string(v.Style)
		r.Depth, r.Size, r.Soften = v.Depth, v.Size, v.Soften
		r.Angle, r.Altitude = v.Angle, v.Altitude
		r.HighlightColor, r.ShadowColor = v.HighlightColor, v.ShadowColor
	case *effect.Satin:
		r.Color, r.Angle, r.Distance, r.Size, r.Invert = v.Color, v.Angle, v.Distance, v.Size, v.Invert
	case *effect.ColorOverlay:
		r.Color = v.Color
	case *effect.GradientOverlay:
		r.Stops = make([]StopRecord, len(v.Stops))
		for i, st := range v.Stops {
			r.Stops[i] = StopRecord{Offset: st.Offset, Color: st.Color}
		}
		r.Angle, r.Scale, r.Reverse = v.Angle, v.Scale, v.Reverse
	case *effect.PatternOverlay:
		r.Pattern, r.Scale = v.Pattern, v.Scale
	case *effect.Stroke:
		r.Color, r.Size, r.Position = v.Color, v.Size, string(v.Position)
	}
	return r
}

// EncodeEffects converts an effect list to record form, preserving
// insertion order.
func EncodeEffects(effects []effect.Effect) []EffectRecord {
	out := make([]EffectRecord, len(effects))
	for i, e := range effects {
		out[i] = EncodeEffect(e)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
