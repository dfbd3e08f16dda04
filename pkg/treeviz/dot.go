// Package treeviz renders a document's layer hierarchy as a node-link
// diagram for debugging and documentation. The hierarchy converts to
// Graphviz DOT and renders to SVG or PNG through the graphviz library.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/inklab/inkdoc/pkg/document"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes blend mode, opacity and effect counts in node
	// labels. When false, only kind and name are shown.
	Detailed bool
}

// ToDOT converts the document's layer tree to Graphviz DOT format.
// Groups are rendered as boxes, content layers as rounded boxes; hidden
// nodes are drawn dashed. The resulting DOT string can be rendered with
// [RenderSVG] or [RenderPNG].
func ToDOT(d *document.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	root := fmt.Sprintf("%q", d.Name)
	fmt.Fprintf(&buf, "  %s [shape=folder, fillcolor=lightyellow];\n", root)

	stack := d.Stack()
	for _, n := range stack.Nodes() {
		label := fmtLabel(stack, n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, label), ", "))
	}

	buf.WriteString("\n")
	for _, n := range stack.Nodes() {
		if n.ParentID == "" {
			fmt.Fprintf(&buf, "  %s -> %q;\n", root, n.ID)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ParentID, n.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s *document.Stack, n *document.Node, detailed bool) string {
	label := fmt.Sprintf("%s\n(%s)", n.Name, n.Kind)
	if !detailed {
		return label
	}

	parts := []string{
		fmt.Sprintf("blend: %s", n.Blend),
		fmt.Sprintf("opacity: %.2f", s.EffectiveOpacity(n)),
	}
	if len(n.Effects) > 0 {
		parts = append(parts, fmt.Sprintf("effects: %d", len(n.Effects)))
	}
	if s.EffectivelyLocked(n) {
		parts = append(parts, "locked")
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *document.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.IsGroup() {
		attrs = append(attrs, "shape=box3d", "fillcolor=lightblue")
	}
	if !n.Visible {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
