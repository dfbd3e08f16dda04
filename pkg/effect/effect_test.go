package effect

import "testing"

func TestDropShadowMargin(t *testing.T) {
	tests := []struct {
		name string
		e    DropShadow
		want Margin
	}{
		{
			name: "no parameters",
			e:    DropShadow{},
			want: Margin{},
		},
		{
			name: "blur only",
			e:    DropShadow{Blur: 4},
			want: Margin{Left: 12, Top: 12, Right: 12, Bottom: 12},
		},
		{
			name: "blur and spread",
			e:    DropShadow{Blur: 2, Spread: 3},
			want: Margin{Left: 9, Top: 9, Right: 9, Bottom: 9},
		},
		{
			name: "negative spread counts by magnitude",
			e:    DropShadow{Blur: 2, Spread: -3},
			want: Margin{Left: 9, Top: 9, Right: 9, Bottom: 9},
		},
		{
			name: "positive x offset reduces left",
			e:    DropShadow{Blur: 2, OffsetX: 4},
			want: Margin{Left: 2, Top: 6, Right: 6, Bottom: 6},
		},
		{
			name: "negative x offset reduces right",
			e:    DropShadow{Blur: 2, OffsetX: -4},
			want: Margin{Left: 6, Top: 6, Right: 2, Bottom: 6},
		},
		{
			name: "positive y offset reduces top",
			e:    DropShadow{Blur: 2, OffsetY: 4},
			want: Margin{Left: 6, Top: 2, Right: 6, Bottom: 6},
		},
		{
			name: "offset larger than expansion clamps to zero",
			e:    DropShadow{Blur: 1, OffsetX: 10},
			want: Margin{Left: 0, Top: 3, Right: 3, Bottom: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Margin(); got != tt.want {
				t.Errorf("Margin() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOuterGlowMargin(t *testing.T) {
	e := OuterGlow{Blur: 3, Spread: 2}
	want := Margin{Left: 11, Top: 11, Right: 11, Bottom: 11}
	if got := e.Margin(); got != want {
		t.Errorf("Margin() = %+v, want %+v", got, want)
	}
}

func TestStrokeMargin(t *testing.T) {
	tests := []struct {
		name string
		e    Stroke
		want Margin
	}{
		{"outside", Stroke{Size: 4, Position: StrokeOutside}, Margin{4, 4, 4, 4}},
		{"center", Stroke{Size: 4, Position: StrokeCenter}, Margin{3, 3, 3, 3}},
		{"center rounds up", Stroke{Size: 5, Position: StrokeCenter}, Margin{3, 3, 3, 3}},
		{"inside", Stroke{Size: 4, Position: StrokeInside}, Margin{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Margin(); got != tt.want {
				t.Errorf("Margin() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClippedEffectsHaveZeroMargin(t *testing.T) {
	effects := []Effect{
		&InnerShadow{Blur: 10, OffsetX: 5},
		&InnerGlow{Blur: 10},
		&ColorOverlay{},
		&GradientOverlay{},
		&PatternOverlay{},
		&Satin{Size: 10, Distance: 10},
		&BevelEmboss{Size: 10, Depth: 100},
	}
	for _, e := range effects {
		if got := e.Margin(); !got.IsZero() {
			t.Errorf("%s Margin() = %+v, want zero", e.Type(), got)
		}
	}
}

func TestMarginUnion(t *testing.T) {
	a := Margin{Left: 1, Top: 8, Right: 3, Bottom: 2}
	b := Margin{Left: 4, Top: 2, Right: 3, Bottom: 7}
	want := Margin{Left: 4, Top: 8, Right: 3, Bottom: 7}
	if got := a.Union(b); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestOrdered_CanonicalOrder(t *testing.T) {
	effects := []Effect{
		&Stroke{Size: 1},
		&InnerShadow{},
		&DropShadow{},
		&ColorOverlay{},
	}

	got := Ordered(effects)
	want := []Type{TypeDropShadow, TypeColorOverlay, TypeInnerShadow, TypeStroke}
	for i, e := range got {
		if e.Type() != want[i] {
			t.Errorf("Ordered()[%d] = %q, want %q", i, e.Type(), want[i])
		}
	}

	// The input keeps its insertion order.
	if effects[0].Type() != TypeStroke {
		t.Error("Ordered() modified its input slice")
	}
}

func TestOrdered_StableWithinType(t *testing.T) {
	first := &DropShadow{OffsetX: 1}
	second := &DropShadow{OffsetX: 2}
	got := Ordered([]Effect{&Stroke{}, first, second})

	if got[0] != Effect(first) || got[1] != Effect(second) {
		t.Error("same-type effects lost their insertion order")
	}
}

func TestStackMargin_SkipsDisabled(t *testing.T) {
	enabled := &OuterGlow{Common: DefaultCommon(), Blur: 2}
	disabled := &DropShadow{Common: Common{Enabled: false}, Blur: 100}

	got := StackMargin([]Effect{enabled, disabled})
	want := Margin{Left: 6, Top: 6, Right: 6, Bottom: 6}
	if got != want {
		t.Errorf("StackMargin() = %+v, want %+v", got, want)
	}
}

func TestNew_ConstructorRegistry(t *testing.T) {
	for _, typ := range []Type{
		TypeDropShadow, TypeInnerShadow, TypeOuterGlow, TypeInnerGlow,
		TypeBevelEmboss, TypeSatin, TypeColorOverlay, TypeGradientOverlay,
		TypePatternOverlay, TypeStroke,
	} {
		e := New(typ)
		if e == nil {
			t.Errorf("New(%q) = nil", typ)
			continue
		}
		if e.Type() != typ {
			t.Errorf("New(%q).Type() = %q", typ, e.Type())
		}
		if !e.Base().Enabled {
			t.Errorf("New(%q) not enabled by default", typ)
		}
	}

	if New(Type("glitter")) != nil {
		t.Error("New(unknown) != nil")
	}
	if Known(Type("glitter")) {
		t.Error("Known(unknown) = true")
	}
}

func TestNew_StrokeDefaultsOutside(t *testing.T) {
	e, ok := New(TypeStroke).(*Stroke)
	if !ok {
		t.Fatal("New(stroke) did not return *Stroke")
	}
	if e.Position != StrokeOutside {
		t.Errorf("Position = %q, want %q", e.Position, StrokeOutside)
	}
}
