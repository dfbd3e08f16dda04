package svgdoc

import (
	"strings"
	"testing"

	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/document"
)

func TestExport_RootDeclaresNamespaces(t *testing.T) {
	d := document.New("doc", 640, 480)
	out := string(Export(d))

	if !strings.Contains(out, `xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing SVG namespace")
	}
	if !strings.Contains(out, `xmlns:`+NamespacePrefix+`="`+Namespace+`"`) {
		t.Error("missing editor namespace declaration")
	}
	if !strings.Contains(out, `viewBox="0 0 640 480"`) {
		t.Error("missing viewBox")
	}
}

func TestExport_HiddenNodesOmittedByDefault(t *testing.T) {
	d := document.New("doc", 10, 10)
	d.Stack().AddLayer("shown")
	d.Stack().AddLayer("ghost", document.WithHidden())

	out := string(Export(d))
	if strings.Contains(out, "ghost") {
		t.Error("hidden node present in default export")
	}

	out = string(Export(d, WithHidden()))
	if !strings.Contains(out, "ghost") {
		t.Error("hidden node missing with WithHidden")
	}
	if !strings.Contains(out, `display="none"`) {
		t.Error("included hidden node not marked display:none")
	}
}

func TestExport_GroupNesting(t *testing.T) {
	d := document.New("doc", 10, 10)
	g := d.Stack().CreateGroup("folder")
	d.Stack().AddLayer("inner", document.WithParent(g.ID))

	out := string(Export(d))
	gi := strings.Index(out, `inkdoc:name="folder"`)
	ii := strings.Index(out, `inkdoc:name="inner"`)
	if gi < 0 || ii < 0 {
		t.Fatalf("missing nodes in output:\n%s", out)
	}
	if ii < gi {
		t.Error("child emitted before its group")
	}
}

func TestExport_PassthroughGroupHasNoOpacity(t *testing.T) {
	d := document.New("doc", 10, 10)
	d.Stack().CreateGroup("pt", document.WithOpacity(0.5))
	d.Stack().CreateGroup("iso", document.WithOpacity(0.5), document.WithBlend(blend.Normal))

	out := string(Export(d))
	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.Contains(line, `inkdoc:name="pt"`) && strings.Contains(line, "opacity=") {
			t.Error("passthrough group carries opacity attribute")
		}
		if strings.Contains(line, `inkdoc:name="iso"`) && !strings.Contains(line, `opacity="0.5"`) {
			t.Error("isolated group missing opacity attribute")
		}
	}
}

func TestExport_VectorShapes(t *testing.T) {
	d := document.New("doc", 10, 10)
	d.Stack().AddLayer("vec",
		document.WithKind(document.KindVector),
		document.WithShapes([]document.Shape{
			{Kind: document.ShapeRect, X: 1, Y: 2, W: 3, H: 4, Fill: "#abc"},
			{Kind: document.ShapeEllipse, X: 0, Y: 0, W: 10, H: 6},
			{Kind: document.ShapeLine, X: 0, Y: 0, X2: 5, Y2: 5, Stroke: "#000", StrokeWidth: 1.5},
		}))

	out := string(Export(d))
	for _, want := range []string{
		`<rect x="1" y="2" width="3" height="4" fill="#abc"/>`,
		`<ellipse cx="5" cy="3" rx="5" ry="3"/>`,
		`<line x1="0" y1="0" x2="5" y2="5" stroke="#000" stroke-width="1.5"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExport_PaintOrderFollowsSequence(t *testing.T) {
	d := document.New("doc", 10, 10)
	d.Stack().AddLayer("bottom")
	d.Stack().AddLayer("top")

	out := string(Export(d))
	if strings.Index(out, `inkdoc:name="bottom"`) > strings.Index(out, `inkdoc:name="top"`) {
		t.Error("bottom layer emitted after top layer")
	}
}

func TestTrimFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0.5, "0.5"},
		{1.25, "1.25"},
		{-3.1, "-3.1"},
		{2.0001, "2.0001"},
	}
	for _, tt := range tests {
		if got := trimFloat(tt.in); got != tt.want {
			t.Errorf("trimFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
