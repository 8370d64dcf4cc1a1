package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/researchos/dataset-builder/config"
	"github.com/researchos/dataset-builder/dataset"
	"github.com/researchos/dataset-builder/display"
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/graph"
	"github.com/researchos/dataset-builder/logger"
)

var stageMessages = map[dataset.State]string{
	dataset.StateIngesting:     "reading the data objects table",
	dataset.StateRawGraphReady: "raw relations recorded",
	dataset.StateFlattened:     "nested mapping built",
	dataset.StateExpanded:      "tree expanded",
	dataset.StateValidated:     "tree validated",
	dataset.StateQueryable:     "dataset ready",
}

func newBuildCmd() *cobra.Command {
	var showTree, dumpMapping bool
	var pathFlag string

	cmd := &cobra.Command{
		Use:   "build <config-path> | --path <config-path>",
		Short: "Build a dataset from its config",
		Long: `Build the dataset described by a config file and report its shape.

The data objects table is read, every row is turned into parent→child
relations between its levels, and the resulting hierarchy is expanded into a
tree and validated.

Examples:
  dataset-builder build dataset.toml
  dataset-builder build dataset.toml --tree
  dataset-builder build dataset.toml --json > graph.json
  dataset-builder build dataset.toml --dump-mapping`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := configPathArg(args, pathFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			jsonOutput := display.ShouldOutputJSON(cmd)
			verbosity, _ := cmd.Flags().GetCount("verbose")

			var emitter display.ProgressEmitter = display.NewCLIEmitter(out, verbosity)
			if jsonOutput {
				emitter = display.NopEmitter{}
			} else {
				fmt.Fprintf(out, "Building the dataset at path: %s\n", configPath)
			}

			b, err := newBuilder(configPath, verbosity, dataset.WithStateHook(func(s dataset.State) {
				if msg, ok := stageMessages[s]; ok {
					emitter.EmitStage(s.String(), msg)
				}
			}))
			if err != nil {
				emitter.EmitError("config", err)
				return err
			}

			ds, err := b.Build()
			if err != nil {
				emitter.EmitError(b.State().String(), err)
				return err
			}

			if jsonOutput {
				return display.OutputJSON(out, graph.FromDataset(ds))
			}
			if dumpMapping {
				if err := display.OutputJSON(out, b.Mapping()); err != nil {
					return err
				}
			}

			stats := ds.Stats()
			emitter.EmitComplete(map[string]interface{}{
				"rows":     stats.Rows,
				"nodes":    stats.Nodes,
				"roots":    stats.Roots,
				"duration": stats.Duration.String(),
			})
			fmt.Fprintf(out, "%d entities across %d levels (%s)\n", stats.Nodes, len(stats.Levels), levelSummary(stats))

			if verbosity >= logger.VerbosityInfo {
				table, err := display.RenderLevelTable(ds)
				if err != nil {
					return err
				}
				pterm.Fprintln(out, table)
			}
			if showTree {
				tree, err := display.RenderTree(ds)
				if err != nil {
					return err
				}
				pterm.Fprintln(out, tree)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pathFlag, "path", "", "Config path (alternative to the positional argument)")
	cmd.Flags().BoolVar(&showTree, "tree", false, "Render the built tree")
	cmd.Flags().Bool("json", false, "Emit the dataset as a node/link graph in JSON")
	cmd.Flags().BoolVar(&dumpMapping, "dump-mapping", false, "Print the nested name mapping as JSON")
	return cmd
}

func configPathArg(args []string, pathFlag string) (string, error) {
	switch {
	case len(args) == 1 && pathFlag != "" && args[0] != pathFlag:
		return "", errors.Newf("config path given twice: %q and --path %q", args[0], pathFlag)
	case len(args) == 1:
		return args[0], nil
	case pathFlag != "":
		return pathFlag, nil
	default:
		return "", errors.WithHint(errors.New("no config path given"), "dataset-builder build <config-path>")
	}
}

// newBuilder loads a config file and prepares a builder logging through the
// global logger.
func newBuilder(configPath string, verbosity int, opts ...dataset.Option) (*dataset.Builder, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	opts = append([]dataset.Option{
		dataset.WithLogger(logger.ComponentLogger("dataset")),
		dataset.WithVerbosity(verbosity),
	}, opts...)
	return dataset.NewBuilder(cfg, opts...)
}

// loadDataset builds the dataset for a query command.
func loadDataset(cmd *cobra.Command, configPath string) (*dataset.Dataset, error) {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	b, err := newBuilder(configPath, verbosity)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

func levelSummary(stats dataset.Stats) string {
	parts := make([]string, len(stats.Levels))
	for i, lc := range stats.Levels {
		parts[i] = fmt.Sprintf("%s: %d", lc.Level, lc.Count)
	}
	return strings.Join(parts, ", ")
}
