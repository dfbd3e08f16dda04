package svgdoc

import (
	"strings"
	"testing"

	"github.com/inklab/inkdoc/pkg/document"
)

func TestTransformString(t *testing.T) {
	tests := []struct {
		name                        string
		ox, oy, rot, scaleX, scaleY float64
		want                        string
	}{
		{"identity", 0, 0, 0, 1, 1, ""},
		{"translate only", 10, -5, 0, 1, 1, "translate(10 -5)"},
		{"rotate only", 0, 0, 45, 1, 1, "rotate(45)"},
		{"scale only", 0, 0, 0, 2, 0.5, "scale(2 0.5)"},
		{"combined", 1, 2, 90, 2, 2, "translate(1 2) rotate(90) scale(2 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformString(tt.ox, tt.oy, tt.rot, tt.scaleX, tt.scaleY)
			if got != tt.want {
				t.Errorf("TransformString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBakeDebake_ByteIdentical(t *testing.T) {
	// Odd whitespace, comments and nested groups inside the payload must
	// all survive the round trip byte for byte.
	payloads := []string{
		`<svg viewBox="0 0 10 10"><circle cx="5" cy="5" r="4" fill="#f00"/></svg>`,
		"<svg>\n  <rect   width=\"3\"/>\n</svg>",
		`<svg><!-- comment --><path d="M 0 0 L 1 1"/></svg>`,
		`<svg><g><g><rect/></g></g></svg>`,
	}

	for _, payload := range payloads {
		baked := Bake("node-1", payload, "translate(4 2)")
		doc := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:` + NamespacePrefix + `="` + Namespace + `">` + baked + `</svg>`

		got, err := Debake([]byte(doc))
		if err != nil {
			t.Fatalf("Debake() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Debake() found %d envelopes, want 1", len(got))
		}
		if got[0].Markup != payload {
			t.Errorf("recovered markup differs:\n got: %q\nwant: %q", got[0].Markup, payload)
		}
		if got[0].ID != "node-1" {
			t.Errorf("ID = %q, want node-1", got[0].ID)
		}
	}
}

func TestBake_TransformOnEnvelopeOnly(t *testing.T) {
	baked := Bake("n", "<svg/>", "rotate(45)")

	if !strings.Contains(baked, `transform="rotate(45)"`) {
		t.Error("envelope missing transform attribute")
	}
	// The payload itself is untouched.
	if strings.Count(baked, "rotate(45)") != 1 {
		t.Error("transform leaked into payload")
	}
}

func TestBake_NoTransformAttrWhenIdentity(t *testing.T) {
	baked := Bake("n", "<svg/>", "")
	if strings.Contains(baked, "transform") {
		t.Errorf("identity bake carries transform: %s", baked)
	}
}

func TestDebake_MultipleEnvelopes(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkdoc="` + Namespace + `">` +
		Bake("a", "<svg><rect/></svg>", "") +
		`<g><circle r="1"/></g>` +
		Bake("b", "<svg><circle/></svg>", "scale(2 2)") +
		`</svg>`

	got, err := Debake([]byte(doc))
	if err != nil {
		t.Fatalf("Debake() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("found %d envelopes, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("IDs = %q, %q, want a, b", got[0].ID, got[1].ID)
	}
}

func TestDebake_IgnoresPlainGroups(t *testing.T) {
	doc := `<svg><g transform="translate(1 1)"><rect/></g></svg>`
	got, err := Debake([]byte(doc))
	if err != nil {
		t.Fatalf("Debake() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("found %d envelopes in plain SVG, want 0", len(got))
	}
}

func TestDebake_UnterminatedEnvelope(t *testing.T) {
	doc := `<svg xmlns:inkdoc="` + Namespace + `"><g inkdoc:content="embedded"><rect/>`
	if _, err := Debake([]byte(doc)); err == nil {
		t.Error("Debake() error = nil for truncated input")
	}
}

func TestExportDebake_RoundTrip(t *testing.T) {
	source := `<svg viewBox="0 0 4 4"><path d="M 0 0 H 4 V 4 Z"/></svg>`

	d := document.New("doc", 100, 100)
	d.Stack().AddLayer("logo",
		document.WithKind(document.KindSVG),
		document.WithSource(source),
		document.WithOffset(10, 20))

	got, err := Debake(Export(d))
	if err != nil {
		t.Fatalf("Debake(Export()) error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("found %d envelopes, want 1", len(got))
	}
	if got[0].Markup != source {
		t.Errorf("markup not byte-identical:\n got: %q\nwant: %q", got[0].Markup, source)
	}
}
