package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inklab/inkdoc/pkg/codec"
	"github.com/inklab/inkdoc/pkg/svgdoc"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var (
		format        string
		out           string
		includeHidden bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a document to SVG or JSON",
		Long: `Export writes a document in another format.

SVG output preserves the full layer structure: groups become <g>
elements, editor metadata is carried in a dedicated namespace, and
embedded SVG layers are baked in so the original markup survives a
round trip. JSON output is the current-schema document record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "svg":
				var opts []svgdoc.Option
				if includeHidden {
					opts = append(opts, svgdoc.WithHidden())
				}
				data = svgdoc.Export(doc, opts...)
			case "json":
				data, err = codec.Marshal(codec.EncodeDocument(doc))
				if err != nil {
					return fmt.Errorf("encode document: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want svg or json)", format)
			}

			if out == "" {
				out = replaceExt(args[0], "."+format)
			}
			if err := writeOutput(out, data); err != nil {
				return err
			}

			p.done(fmt.Sprintf("Exported %d layers", doc.Stack().Len()))
			if out != "-" {
				printFile(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format (svg, json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default input with new extension, - for stdout)")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "include hidden layers in SVG output")
	return cmd
}
