package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/researchos/dataset-builder/config"
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, validate or create dataset configs",
		Long: `Show, validate or create dataset configs.

A dataset config names the data objects table and maps its columns onto an
ordered list of levels. TOML, YAML and JSON files are accepted; environment
variables prefixed with ` + config.EnvPrefix + `_ override scalar keys.

Examples:
  dataset-builder config show dataset.toml --format yaml
  dataset-builder config validate dataset.toml
  dataset-builder config init dataset.toml --level Subject=SubjectName --level Trial=TrialName`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <config-path>",
		Short: "Show a config after defaults and overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg, format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != config.FormatJSON {
				fmt.Fprintf(out, "# Dataset config (%s)\n", cfg.Source)
			}
			fmt.Fprint(out, string(data))
			if format == config.FormatJSON {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTOML, "Output format: toml, json, yaml")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-path>",
		Short: "Validate a config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			h, err := cfg.Hierarchy()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Configuration is valid")
			for _, c := range h.Columns() {
				fmt.Fprintf(out, "  %d. %s ← column %q\n", c.Level.Index+1, c.Level.Name, c.Column)
			}
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var levels []string
	var table string
	var force bool

	cmd := &cobra.Command{
		Use:   "init <config-path>",
		Short: "Write a starter config",
		Long: `Write a starter config with the given levels, root first.

Each --level is Level=Column; a bare Level reads a column of the same name.
An existing file is only replaced with --force, after being rotated into
.back1, .back2 and .back3.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings, err := parseLevelFlags(levels)
			if err != nil {
				return err
			}
			if _, err := level.NewColumnHierarchy(bindings); err != nil {
				return err
			}

			if err := config.WriteFile(config.Template(bindings, table), args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&levels, "level", nil, "Level=Column binding, root first (repeatable)")
	cmd.Flags().StringVar(&table, "table", "objects.csv", "Data objects table path, relative to the config")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config")
	_ = cmd.MarkFlagRequired("level")
	return cmd
}

func parseLevelFlags(values []string) ([]level.Binding, error) {
	bindings := make([]level.Binding, 0, len(values))
	for _, v := range values {
		name, column, ok := strings.Cut(v, "=")
		if !ok {
			column = name
		}
		if name == "" || column == "" {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrConfigInvalid, "malformed --level %q", v),
				"write --level Level=Column, e.g. --level Subject=SubjectName",
			)
		}
		bindings = append(bindings, level.Binding{Column: column, Level: name})
	}
	return bindings, nil
}
