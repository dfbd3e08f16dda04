// Package svgdoc exports documents as standalone SVG and recovers
// embedded vector content from exported files.
//
// Exported files carry a private namespace ([Namespace]) on the document
// root. Every layer and group becomes a namespaced <g> element with
// editor-specific attributes, so a re-import can rebuild the layer panel
// from a plain SVG file. Embedded SVG layers are "baked": their original
// markup is wrapped in a transform envelope and emitted exactly once -
// never duplicated into a side-channel attribute. See bake.go for the
// envelope format and the debake scan.
package svgdoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/document"
)

// Namespace is the private XML namespace identifying editor-originated
// content in exported SVG.
const Namespace = "https://inklab.dev/ns/inkdoc"

// NamespacePrefix is the attribute prefix bound to [Namespace].
const NamespacePrefix = "inkdoc"

// Option configures [Export].
type Option func(*exporter)

// WithHidden includes invisible nodes in the output (rendered with
// display:none) instead of omitting them.
func WithHidden() Option { return func(e *exporter) { e.includeHidden = true } }

type exporter struct {
	includeHidden bool
}

// Export renders the document as a standalone SVG file. Children
// composite bottom-to-top, so document sequence order maps directly to
// SVG paint order.
func Export(d *document.Document, opts ...Option) []byte {
	var e exporter
	for _, opt := range opts {
		opt(&e)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:%s=%q viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		NamespacePrefix, Namespace, d.Width, d.Height, d.Width, d.Height)

	stack := d.Stack()
	for _, n := range stack.Children("") {
		e.writeNode(&buf, stack, n, 1)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (e *exporter) writeNode(buf *bytes.Buffer, s *document.Stack, n *document.Node, depth int) {
	if !n.Visible && !e.includeHidden {
		return
	}
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(buf, "%s<g %s%s>\n", indent, nodeAttrs(n), displayAttr(n))

	switch n.Kind {
	case document.KindGroup:
		for _, child := range s.Children(n.ID) {
			e.writeNode(buf, s, child, depth+1)
		}
	case document.KindVector:
		for _, sh := range n.Shapes {
			writeShape(buf, sh, depth+1)
		}
	case document.KindSVG:
		transform := TransformString(n.OffsetX, n.OffsetY, n.Rotation, n.ScaleX, n.ScaleY)
		fmt.Fprintf(buf, "%s  %s\n", indent, Bake(n.ID, n.Source, transform))
	default:
		if n.SourceRef != "" {
			fmt.Fprintf(buf, "%s  <image href=%q/>\n", indent, n.SourceRef)
		}
	}

	fmt.Fprintf(buf, "%s</g>\n", indent)
}

// nodeAttrs emits the namespaced editor attributes plus standard opacity.
// Passthrough groups carry no opacity of their own.
func nodeAttrs(n *document.Node) string {
	var b strings.Builder
	attr := func(name, value string) {
		fmt.Fprintf(&b, `%s:%s=%q `, NamespacePrefix, name, value)
	}
	attr("node", string(n.Kind))
	attr("id", n.ID)
	attr("name", n.Name)
	attr("blend", string(n.Blend))
	if n.Locked {
		attr("locked", "true")
	}
	if !n.Visible {
		attr("visible", "false")
	}
	if n.IsGroup() && !n.Expanded {
		attr("expanded", "false")
	}

	if n.Blend != blend.Passthrough && n.Opacity != 1.0 {
		fmt.Fprintf(&b, `opacity="%s" `, trimFloat(n.Opacity))
	}
	return strings.TrimRight(b.String(), " ")
}

func displayAttr(n *document.Node) string {
	if n.Visible {
		return ""
	}
	return ` display="none"`
}

func writeShape(buf *bytes.Buffer, sh document.Shape, depth int) {
	indent := strings.Repeat("  ", depth)
	paint := shapePaint(sh)
	switch sh.Kind {
	case document.ShapeRect:
		fmt.Fprintf(buf, "%s<rect x=%q y=%q width=%q height=%q%s/>\n",
			indent, trimFloat(sh.X), trimFloat(sh.Y), trimFloat(sh.W), trimFloat(sh.H), paint)
	case document.ShapeEllipse:
		fmt.Fprintf(buf, "%s<ellipse cx=%q cy=%q rx=%q ry=%q%s/>\n",
			indent, trimFloat(sh.X+sh.W/2), trimFloat(sh.Y+sh.H/2), trimFloat(sh.W/2), trimFloat(sh.H/2), paint)
	case document.ShapeLine:
		fmt.Fprintf(buf, "%s<line x1=%q y1=%q x2=%q y2=%q%s/>\n",
			indent, trimFloat(sh.X), trimFloat(sh.Y), trimFloat(sh.X2), trimFloat(sh.Y2), paint)
	case document.ShapePath:
		fmt.Fprintf(buf, "%s<path d=%q%s/>\n", indent, sh.Path, paint)
	}
}

func shapePaint(sh document.Shape) string {
	var b strings.Builder
	if sh.Fill != "" {
		fmt.Fprintf(&b, ` fill=%q`, sh.Fill)
	}
	if sh.Stroke != "" {
		fmt.Fprintf(&b, ` stroke=%q`, sh.Stroke)
	}
	if sh.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width=%q`, trimFloat(sh.StrokeWidth))
	}
	return b.String()
}

// trimFloat formats a float without trailing zeros, matching hand-written
// SVG conventions.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
