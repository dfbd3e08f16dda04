package render

import (
	"context"
	"image"
	"image/draw"

	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/document"
	"github.com/inklab/inkdoc/pkg/effect"
)

// Backend is the external pixel-compute boundary. The compositor hands
// it validated inputs (pre-allocated buffers sized for the effect's
// canvas expansion) and treats the pixel math itself as opaque. Kernels
// are swappable; long-running invocations honor ctx cancellation on the
// backend side.
type Backend interface {
	// DrawContent rasterizes the node's own content into dst.
	DrawContent(ctx context.Context, dst *image.RGBA, n *document.Node) error

	// ApplyEffect runs one effect kernel over dst in place. dst is
	// already expanded by the effect's reported margin.
	ApplyEffect(ctx context.Context, dst *image.RGBA, e effect.Effect) error

	// Blend composites src over dst with the given mode and opacity.
	Blend(ctx context.Context, dst, src *image.RGBA, mode blend.Mode, opacity float64) error
}

// NoopBackend is a backend that skips all pixel kernels and composites
// with plain source-over. It keeps the compositor testable without any
// native filter library.
type NoopBackend struct{}

func (NoopBackend) DrawContent(ctx context.Context, dst *image.RGBA, n *document.Node) error {
	return nil
}

func (NoopBackend) ApplyEffect(ctx context.Context, dst *image.RGBA, e effect.Effect) error {
	return nil
}

func (NoopBackend) Blend(ctx context.Context, dst, src *image.RGBA, mode blend.Mode, opacity float64) error {
	draw.Draw(dst, dst.Bounds().Intersect(src.Bounds()), src, src.Bounds().Min, draw.Over)
	return nil
}

var _ Backend = NoopBackend{}

// Expand grows a rectangle by the given per-side margin.
func Expand(r image.Rectangle, m effect.Margin) image.Rectangle {
	return image.Rect(r.Min.X-m.Left, r.Min.Y-m.Top, r.Max.X+m.Right, r.Max.Y+m.Bottom)
}
