package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/researchos/dataset-builder/logger"
)

// NewRootCmd assembles the dataset-builder command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dataset-builder",
		Short: "Build and query hierarchical research datasets",
		Long: `dataset-builder reads a table of research data objects (subjects, trials,
segments, ...) described by a dataset config, builds the hierarchy they form
and answers ancestry and partial-key queries against it.

Available commands:
  build    - Build a dataset and report its shape
  lookup   - Resolve a partial key to an entity
  ancestry - Show the ancestry of an entity
  config   - Show, validate or create dataset configs
  version  - Show version information

Examples:
  dataset-builder build dataset.toml --tree
  dataset-builder lookup dataset.toml Subject=Nairobi Trial=Nairobi_006
  dataset-builder ancestry dataset.toml Trial=Nairobi_007
  dataset-builder config init dataset.toml --level Subject=SubjectName --level Trial=TrialName`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			if err := logger.Initialize(logJSON, verbosity); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity))
			return nil
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv, -vvvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newAncestryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
