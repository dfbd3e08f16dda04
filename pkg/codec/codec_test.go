package codec

import (
	"testing"

	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/document"
	"github.com/inklab/inkdoc/pkg/effect"
)

func TestRoundTrip_Layer(t *testing.T) {
	d := document.New("doc", 800, 600)
	n := d.Stack().AddLayer("hero",
		document.WithOpacity(0.7),
		document.WithBlend(blend.Multiply),
		document.WithOffset(10, -4))
	n.Locked = true

	got := decodeNode(t, EncodeDocument(d), n.ID)
	if got.Kind != document.KindLayer {
		t.Errorf("Kind = %q, want %q", got.Kind, document.KindLayer)
	}
	if got.Name != "hero" || got.Opacity != 0.7 || got.Blend != blend.Multiply || !got.Locked {
		t.Errorf("layer fields lost: %+v", got)
	}
	if got.OffsetX != 10 || got.OffsetY != -4 {
		t.Errorf("offset = (%v, %v), want (10, -4)", got.OffsetX, got.OffsetY)
	}
}

func TestRoundTrip_GroupKeepsPassthrough(t *testing.T) {
	d := document.New("doc", 800, 600)
	g := d.Stack().CreateGroup("group")
	_ = d.Stack().ToggleExpanded(g.ID) // collapse

	got := decodeNode(t, EncodeDocument(d), g.ID)
	if !got.IsGroup() {
		t.Fatal("decoded node is not a group")
	}
	if got.Blend != blend.Passthrough {
		t.Errorf("Blend = %q, want %q", got.Blend, blend.Passthrough)
	}
	if got.Expanded {
		t.Error("collapse state lost")
	}
}

func TestRoundTrip_VectorShapes(t *testing.T) {
	d := document.New("doc", 800, 600)
	n := d.Stack().AddLayer("shapes",
		document.WithKind(document.KindVector),
		document.WithShapes([]document.Shape{
			{Kind: document.ShapeRect, X: 1, Y: 2, W: 30, H: 40, Fill: "#ff0000"},
			{Kind: document.ShapePath, Path: "M 0 0 L 10 10", Stroke: "#000", StrokeWidth: 2},
		}))

	got := decodeNode(t, EncodeDocument(d), n.ID)
	if len(got.Shapes) != 2 {
		t.Fatalf("len(Shapes) = %d, want 2", len(got.Shapes))
	}
	if got.Shapes[0] != n.Shapes[0] || got.Shapes[1] != n.Shapes[1] {
		t.Errorf("shapes changed: %+v", got.Shapes)
	}
}

func TestRoundTrip_SVGSource(t *testing.T) {
	d := document.New("doc", 800, 600)
	n := d.Stack().AddLayer("logo",
		document.WithKind(document.KindSVG),
		document.WithSource(`<svg><circle r="5"/></svg>`))

	got := decodeNode(t, EncodeDocument(d), n.ID)
	if got.Source != n.Source {
		t.Errorf("Source = %q, want %q", got.Source, n.Source)
	}
}

func TestEncodeNode_SourceRefSuppressesInlineSource(t *testing.T) {
	d := document.New("doc", 800, 600)
	n := d.Stack().AddLayer("big",
		document.WithKind(document.KindSVG),
		document.WithSource("<svg/>"),
		document.WithSourceRef("assets/big.svg", "svg"))

	r := EncodeNode(n)
	if r.Source != "" {
		t.Errorf("Source = %q, want empty when SourceRef is set", r.Source)
	}
	if r.SourceRef != "assets/big.svg" || r.Format != "svg" {
		t.Errorf("SourceRef/Format = %q/%q", r.SourceRef, r.Format)
	}
}

func TestRoundTrip_Effects(t *testing.T) {
	d := document.New("doc", 800, 600)
	n := d.Stack().AddLayer("fx")
	_ = d.Stack().AddEffect(n.ID, &effect.DropShadow{
		Common:  effect.Common{Enabled: true, Blend: blend.Multiply, Opacity: 0.6},
		Color:   "#00000080",
		OffsetX: 2, OffsetY: 3, Blur: 4, Spread: -1,
	})
	_ = d.Stack().AddEffect(n.ID, &effect.Stroke{
		Common: effect.DefaultCommon(),
		Color:  "#ff0000", Size: 2, Position: effect.StrokeCenter,
	})

	got := decodeNode(t, EncodeDocument(d), n.ID)
	if len(got.Effects) != 2 {
		t.Fatalf("len(Effects) = %d, want 2", len(got.Effects))
	}

	ds, ok := got.Effects[0].(*effect.DropShadow)
	if !ok {
		t.Fatalf("Effects[0] = %T, want *effect.DropShadow", got.Effects[0])
	}
	if ds.Blend != blend.Multiply || ds.Opacity != 0.6 || ds.Blur != 4 || ds.Spread != -1 {
		t.Errorf("drop shadow fields lost: %+v", ds)
	}

	st, ok := got.Effects[1].(*effect.Stroke)
	if !ok {
		t.Fatalf("Effects[1] = %T, want *effect.Stroke", got.Effects[1])
	}
	if st.Position != effect.StrokeCenter || st.Size != 2 {
		t.Errorf("stroke fields lost: %+v", st)
	}
}

func TestDecodeNode_UnknownTagDropped(t *testing.T) {
	if n := DecodeNode(LayerRecord{SchemaVersion: CurrentVersion, TypeTag: "HologramLayer", ID: "x"}); n != nil {
		t.Errorf("DecodeNode(unknown tag) = %+v, want nil", n)
	}
}

func TestDecodeDocument_DropsUnknownKeepsSiblings(t *testing.T) {
	rec := DocumentRecord{
		ID: "d1", Name: "doc", Width: 10, Height: 10, Version: CurrentVersion,
		Layers: []LayerRecord{
			{SchemaVersion: CurrentVersion, TypeTag: TagLayer, ID: "a", Name: "a", Visible: true, Opacity: 1, Blend: "normal"},
			{SchemaVersion: CurrentVersion, TypeTag: "HologramLayer", ID: "b", Name: "b"},
			{SchemaVersion: CurrentVersion, TypeTag: TagLayer, ID: "c", Name: "c", Visible: true, Opacity: 1, Blend: "normal"},
		},
	}

	d := DecodeDocument(rec)
	if got := d.Stack().Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if _, ok := d.Stack().Node("b"); ok {
		t.Error("unknown-tag record was not dropped")
	}
	if d.Dirty() {
		t.Error("loaded document is dirty")
	}
}

func TestDecodeDocument_RepairsDanglingParents(t *testing.T) {
	rec := DocumentRecord{
		ID: "d1", Version: CurrentVersion,
		Layers: []LayerRecord{
			{SchemaVersion: CurrentVersion, TypeTag: TagLayer, ID: "a", ParentID: "gone", Visible: true, Opacity: 1},
		},
	}

	d := DecodeDocument(rec)
	n, ok := d.Stack().Node("a")
	if !ok {
		t.Fatal("node lost")
	}
	if n.ParentID != "" {
		t.Errorf("ParentID = %q, want repaired to root", n.ParentID)
	}
	if err := d.Stack().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDecodeDocument_ChildBeforeParent(t *testing.T) {
	// The flat layer array may list a child before its group.
	rec := DocumentRecord{
		ID: "d1", Version: CurrentVersion,
		Layers: []LayerRecord{
			{SchemaVersion: CurrentVersion, TypeTag: TagLayer, ID: "child", ParentID: "g", Visible: true, Opacity: 1},
			{SchemaVersion: CurrentVersion, TypeTag: TagGroup, ID: "g", Visible: true, Opacity: 1, Blend: "passthrough"},
		},
	}

	d := DecodeDocument(rec)
	n, _ := d.Stack().Node("child")
	if n.ParentID != "g" {
		t.Errorf("ParentID = %q, want %q (forward reference must survive)", n.ParentID, "g")
	}
}

func TestDecodeNode_UnknownBlendNormalizes(t *testing.T) {
	n := DecodeNode(LayerRecord{
		SchemaVersion: CurrentVersion, TypeTag: TagLayer,
		ID: "a", Visible: true, Opacity: 1, Blend: "plasma",
	})
	if n.Blend != blend.Normal {
		t.Errorf("Blend = %q, want %q", n.Blend, blend.Normal)
	}
}

func TestDecodeEffects_UnknownTypeDropped(t *testing.T) {
	got := DecodeEffects([]EffectRecord{
		{Type: "dropShadow"},
		{Type: "sparkle"},
		{Type: "stroke"},
	})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Type() != effect.TypeDropShadow || got[1].Type() != effect.TypeStroke {
		t.Errorf("kept effects = %v, %v", got[0].Type(), got[1].Type())
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	d := document.New("doc", 640, 480)
	d.Stack().AddLayer("a")

	data, err := Marshal(EncodeDocument(d))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	rec, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if rec.Name != "doc" || rec.Width != 640 || len(rec.Layers) != 1 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", rec.Version, CurrentVersion)
	}
}

// decodeNode round-trips the record and returns the node with the given
// ID, failing the test if it is missing.
func decodeNode(t *testing.T, rec DocumentRecord, id string) *document.Node {
	t.Helper()
	d := DecodeDocument(rec)
	n, ok := d.Stack().Node(id)
	if !ok {
		t.Fatalf("node %q missing after round trip", id)
	}
	return n
}
