package cli

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/spf13/cobra"

	"github.com/inklab/inkdoc/pkg/document"
	"github.com/inklab/inkdoc/pkg/render"
)

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var (
		out     string
		margins bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Composite a document to a raster image",
		Long: `Render composites the document bottom to top through the pixel
backend and writes the result as PNG.

With --margins, the per-node effect expansion is reported instead: for
each node carrying effects, the extra pixels its surface needs on every
side so drop shadows, glows and strokes are not clipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			p := newProgress(logger)

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			if margins {
				reportMargins(doc)
				return nil
			}

			c := render.NewCompositor(render.NoopBackend{}, logger)
			img, err := c.Render(ctx, doc)
			if err != nil {
				return fmt.Errorf("composite: %w", err)
			}

			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return fmt.Errorf("encode png: %w", err)
			}

			if out == "" {
				out = replaceExt(args[0], ".png")
			}
			if err := writeOutput(out, buf.Bytes()); err != nil {
				return err
			}

			p.done(fmt.Sprintf("Rendered %dx%d canvas", doc.Width, doc.Height))
			if out != "-" {
				printFile(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default input with .png extension, - for stdout)")
	cmd.Flags().BoolVar(&margins, "margins", false, "report per-node effect expansion instead of rendering")
	return cmd
}

// reportMargins prints the effect expansion for every node that needs
// one. Nodes with zero margin are skipped.
func reportMargins(doc *document.Document) {
	expansion := render.Expansion(doc)
	stack := doc.Stack()

	var reported int
	for _, n := range stack.Nodes() {
		m, ok := expansion[n.ID]
		if !ok || m.IsZero() {
			continue
		}
		printKeyValue(n.Name, fmt.Sprintf("left=%d top=%d right=%d bottom=%d", m.Left, m.Top, m.Right, m.Bottom))
		reported++
	}

	if reported == 0 {
		printInfo("no nodes require effect expansion")
	}
}
