package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/researchos/dataset-builder/dataset"
	"github.com/researchos/dataset-builder/display"
)

// entityView is the JSON form of a resolved entity.
type entityView struct {
	ID    string            `json:"id"`
	Level string            `json:"level"`
	Name  string            `json:"name"`
	Path  []string          `json:"path"`
	Key   map[string]string `json:"key"`
}

func newEntityView(ds *dataset.Dataset, e *dataset.Entity) entityView {
	v := entityView{
		ID:    e.ID.String(),
		Level: e.Level.Name,
		Name:  e.Name,
		Key:   make(map[string]string),
	}
	path, _ := ds.Path(e)
	for _, p := range path {
		v.Path = append(v.Path, p.String())
		v.Key[p.Level.Name] = p.Name
	}
	return v
}

func newLookupCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "lookup <config-path> <Level=Name>...",
		Short: "Resolve a partial key to an entity",
		Long: `Build the dataset and resolve a partial key of Level=Name terms.

The deepest level in the key is the one searched; every other term must
match somewhere in the candidate's ancestry. When a key matches several
entities the first in build order is printed; use --all to see every match.

Examples:
  dataset-builder lookup dataset.toml Subject=Nairobi Trial=Nairobi_006
  dataset-builder lookup dataset.toml Trial=Baseline --all
  dataset-builder lookup dataset.toml 'Subject="Site 4" Trial=T1'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := dataset.ParseKey(args[1:]...)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, args[0])
			if err != nil {
				return err
			}

			var matches []*dataset.Entity
			if all {
				matches, err = ds.Matches(key)
			} else {
				var e *dataset.Entity
				e, err = ds.Lookup(key)
				matches = []*dataset.Entity{e}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if display.ShouldOutputJSON(cmd) {
				views := make([]entityView, len(matches))
				for i, m := range matches {
					views[i] = newEntityView(ds, m)
				}
				if all {
					return display.OutputJSON(out, views)
				}
				return display.OutputJSON(out, views[0])
			}
			for _, m := range matches {
				fmt.Fprintln(out, display.RenderEntity(ds, m))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Print every entity the key matches")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newAncestryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ancestry <config-path> <Level=Name>...",
		Short: "Show the ancestry of an entity",
		Long: `Build the dataset, resolve a partial key and print the matched entity
together with every ancestor, one per line, ordered from the root down.

Examples:
  dataset-builder ancestry dataset.toml Trial=Nairobi_007
  dataset-builder ancestry dataset.toml Subject=Nairobi Trial=Nairobi_007 --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := dataset.ParseKey(args[1:]...)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, args[0])
			if err != nil {
				return err
			}
			e, err := ds.Lookup(key)
			if err != nil {
				return err
			}
			ancestry, err := ds.Ancestry(e)
			if err != nil {
				return err
			}

			members := ancestry.Slice()
			sort.Slice(members, func(i, j int) bool {
				return members[i].Level.Index < members[j].Level.Index
			})

			out := cmd.OutOrStdout()
			if display.ShouldOutputJSON(cmd) {
				views := make([]entityView, len(members))
				for i, m := range members {
					views[i] = newEntityView(ds, m)
				}
				return display.OutputJSON(out, views)
			}
			for _, m := range members {
				fmt.Fprintf(out, "%d\t%s\t%s\n", m.Level.Index, m.Level.Name, m.Name)
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
