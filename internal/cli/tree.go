package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inklab/inkdoc/pkg/treeviz"
)

// newTreeCmd creates the tree command.
func newTreeCmd() *cobra.Command {
	var (
		format   string
		out      string
		detailed bool
		tui      bool
	)

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Visualize the layer hierarchy",
		Long: `Tree renders the document's layer hierarchy as a node-link diagram
in DOT, SVG or PNG format. Groups are drawn as boxes, content layers as
rounded boxes, and hidden nodes dashed.

With --interactive, an in-terminal browser opens instead: navigate the
tree, expand and collapse groups, and toggle layer visibility.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			if tui {
				model := newLayerTreeModel(doc)
				prog := tea.NewProgram(model, tea.WithContext(ctx))
				final, err := prog.Run()
				if err != nil {
					return fmt.Errorf("run tree browser: %w", err)
				}
				if m, ok := final.(layerTreeModel); ok && m.mutated {
					printInfo("document was modified in the browser; changes are not saved")
				}
				return nil
			}

			dot := treeviz.ToDOT(doc, treeviz.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				sp := newSpinner(ctx, "rendering diagram")
				sp.Start()
				data, err = treeviz.RenderSVG(ctx, dot)
				sp.Stop()
			case "png":
				sp := newSpinner(ctx, "rendering diagram")
				sp.Start()
				data, err = treeviz.RenderPNG(ctx, dot)
				sp.Stop()
			default:
				return fmt.Errorf("unknown format %q (want dot, svg or png)", format)
			}
			if err != nil {
				return fmt.Errorf("render tree: %w", err)
			}

			if out == "" {
				out = replaceExt(args[0], ".tree."+format)
			}
			if err := writeOutput(out, data); err != nil {
				return err
			}

			logger.Debug("rendered tree", "format", format, "bytes", len(data))
			printSuccess("Rendered layer tree")
			if out != "-" {
				printFile(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format (dot, svg, png)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default derived from input, - for stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include blend, opacity and effect counts in labels")
	cmd.Flags().BoolVarP(&tui, "interactive", "i", false, "browse the tree in the terminal")
	return cmd
}
