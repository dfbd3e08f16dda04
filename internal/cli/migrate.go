package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inklab/inkdoc/pkg/codec"
)

// newMigrateCmd creates the migrate command.
func newMigrateCmd() *cobra.Command {
	var (
		out    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "migrate <file>",
		Short: "Upgrade a document file to the current schema",
		Long: `Migrate rewrites a legacy document file at the current schema
version. Each layer record is stepped through the migration chain, so a
file several versions behind upgrades in one pass. Files already at the
current version are rewritten unchanged.

By default the file is updated in place; use --out to write elsewhere.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			rec, err := loadRecord(args[0])
			if err != nil {
				return err
			}
			from := rec.Version
			if from <= 0 {
				from = 1
			}

			if dryRun {
				if from == codec.CurrentVersion {
					printInfo("%s is already at schema v%d", args[0], codec.CurrentVersion)
				} else {
					printInfo("%s would migrate v%d %s v%d (%d layers)", args[0], from, iconArrow, codec.CurrentVersion, len(rec.Layers))
				}
				return nil
			}

			rec = codec.MigrateDocument(rec)
			logger.Debug("migrated document", "id", rec.ID, "from", from, "to", rec.Version)

			data, err := codec.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}

			if out == "" {
				out = args[0]
			}
			if err := writeOutput(out, data); err != nil {
				return err
			}

			if from == codec.CurrentVersion {
				printSuccess("Already at schema v%d", codec.CurrentVersion)
			} else {
				printSuccess("Migrated v%d %s v%d", from, iconArrow, codec.CurrentVersion)
			}
			if out != "-" {
				printFile(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default in place)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	return cmd
}
