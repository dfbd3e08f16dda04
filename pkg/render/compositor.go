// Package render composites a document's layer tree into a raster
// surface.
//
// Rendering is a pure read of the tree: it never mutates nodes and
// reflects only fully-applied mutations. Children composite bottom to
// top. A non-passthrough group renders its children into an intermediate
// surface, applies its own effect stack to that surface as a unit, then
// blends the result with the group's opacity and mode; a passthrough
// group skips the intermediate step entirely and lets children blend
// directly with whatever lies beneath the group.
//
// Effects of a node always run in the canonical order of
// [effect.Ordered], regardless of storage order, and each enabled effect
// gets a buffer pre-expanded by its reported margin before its kernel is
// invoked.
package render

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inklab/inkdoc/pkg/document"
	"github.com/inklab/inkdoc/pkg/effect"
	"github.com/inklab/inkdoc/pkg/observability"
)

// Compositor renders documents through a pixel [Backend]. It is
// stateless apart from the backend and logger; one compositor can render
// any number of documents.
type Compositor struct {
	backend Backend
	logger  *log.Logger
}

// NewCompositor creates a compositor. A nil backend falls back to
// [NoopBackend]; a nil logger falls back to log.Default().
func NewCompositor(b Backend, logger *log.Logger) *Compositor {
	if b == nil {
		b = NoopBackend{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Compositor{backend: b, logger: logger}
}

// Render composites the full document into a canvas-sized surface.
func (c *Compositor) Render(ctx context.Context, d *document.Document) (*image.RGBA, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, d.ID, d.Stack().Len())

	canvas := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	stack := d.Stack()

	var err error
	for _, n := range stack.Children("") {
		if err = c.renderNode(ctx, canvas, stack, n); err != nil {
			break
		}
	}

	observability.Render().OnRenderComplete(ctx, d.ID, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("rendered document",
		"doc", d.ID,
		"nodes", stack.Len(),
		"duration", time.Since(start))
	return canvas, nil
}

// renderNode composites one node (and, for groups, its subtree) onto dst.
// Ancestor visibility is already established by the recursion, so only
// the node's own flag is checked here.
func (c *Compositor) renderNode(ctx context.Context, dst *image.RGBA, s *document.Stack, n *document.Node) error {
	if !n.Visible {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if n.IsGroup() {
		return c.renderGroup(ctx, dst, s, n)
	}
	return c.renderLayer(ctx, dst, n)
}

func (c *Compositor) renderGroup(ctx context.Context, dst *image.RGBA, s *document.Stack, n *document.Node) error {
	if n.Passthrough() {
		// No compositing step of its own: children blend directly
		// against the backdrop beneath the group.
		for _, child := range s.Children(n.ID) {
			if err := c.renderNode(ctx, dst, s, child); err != nil {
				return err
			}
		}
		return nil
	}

	margin := effect.StackMargin(n.Effects)
	surface := image.NewRGBA(Expand(dst.Bounds(), margin))
	for _, child := range s.Children(n.ID) {
		if err := c.renderNode(ctx, surface, s, child); err != nil {
			return err
		}
	}

	if err := c.applyEffects(ctx, surface, n); err != nil {
		return err
	}
	return c.backend.Blend(ctx, dst, surface, n.Blend, n.Opacity)
}

func (c *Compositor) renderLayer(ctx context.Context, dst *image.RGBA, n *document.Node) error {
	margin := effect.StackMargin(n.Effects)
	surface := image.NewRGBA(Expand(dst.Bounds(), margin))

	if err := c.backend.DrawContent(ctx, surface, n); err != nil {
		return fmt.Errorf("draw %s: %w", n.ID, err)
	}
	if err := c.applyEffects(ctx, surface, n); err != nil {
		return err
	}
	return c.backend.Blend(ctx, dst, surface, n.Blend, n.Opacity)
}

// applyEffects runs the node's enabled effects in canonical order.
// Disabled effects are skipped but stay in the document.
func (c *Compositor) applyEffects(ctx context.Context, surface *image.RGBA, n *document.Node) error {
	for _, e := range effect.Ordered(n.Effects) {
		if !e.Base().Enabled {
			continue
		}
		if err := c.backend.ApplyEffect(ctx, surface, e); err != nil {
			return fmt.Errorf("effect %s on %s: %w", e.Type(), n.ID, err)
		}
	}
	return nil
}

// Expansion reports the canvas-expansion margin each node's enabled
// effect stack requires, keyed by node ID. Used by tooling to size
// buffers and debug bleed.
func Expansion(d *document.Document) map[string]effect.Margin {
	out := make(map[string]effect.Margin)
	for _, n := range d.Stack().Nodes() {
		if m := effect.StackMargin(n.Effects); !m.IsZero() {
			out[n.ID] = m
		}
	}
	return out
}
