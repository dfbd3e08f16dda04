// Package cli implements the inkdoc command-line interface.
//
// This package provides commands for inspecting layered documents,
// exporting them to SVG or JSON, compositing them through a pixel
// backend, migrating legacy files to the current schema, visualizing
// the layer hierarchy, and serving the document HTTP API. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - inspect: Summarize a document file (tree, effective state)
//   - export: Write SVG or JSON output
//   - render: Composite the document and report effect expansion
//   - migrate: Upgrade a legacy document file in place
//   - tree: Render the layer hierarchy (DOT/SVG/PNG or interactive)
//   - serve: Run the document HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/inklab/inkdoc/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "inkdoc"

// Execute runs the inkdoc CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "InkDoc manages layered image-editor documents",
		Long:         `InkDoc is a CLI for the layered document model behind the editor: inspect layer trees, export SVG, migrate legacy files, and serve the document API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", fmt.Sprintf("config file (default %s)", defaultConfigPath()))

	root.AddCommand(newInspectCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
