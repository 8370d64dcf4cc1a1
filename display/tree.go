package display

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/researchos/dataset-builder/dataset"
)

// RenderTree renders the dataset as an indented tree, one line per entity,
// children under their parent in build order.
func RenderTree(ds *dataset.Dataset) (string, error) {
	var list pterm.LeveledList
	var walk func(e *dataset.Entity)
	walk = func(e *dataset.Entity) {
		list = append(list, pterm.LeveledListItem{
			Level: e.Level.Index,
			Text:  fmt.Sprintf("%s %s", pterm.Gray(e.Level.Name), e.Name),
		})
		for _, c := range ds.Children(e) {
			walk(c)
		}
	}
	for _, r := range ds.Roots() {
		walk(r)
	}
	if len(list) == 0 {
		return "", nil
	}
	return pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(list)).Srender()
}

// RenderLevelTable renders per-level node counts.
func RenderLevelTable(ds *dataset.Dataset) (string, error) {
	columns := make(map[string]string)
	for _, c := range ds.Hierarchy().Columns() {
		columns[c.Level.Name] = c.Column
	}

	data := pterm.TableData{{"Depth", "Level", "Column", "Nodes"}}
	for i, lc := range ds.Stats().Levels {
		data = append(data, []string{strconv.Itoa(i), lc.Level, columns[lc.Level], strconv.Itoa(lc.Count)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// RenderEntity renders one entity with its root-to-node path.
func RenderEntity(ds *dataset.Dataset, e *dataset.Entity) string {
	path, err := ds.Path(e)
	if err != nil {
		return e.String()
	}
	out := ""
	for i, p := range path {
		if i > 0 {
			out += " " + pterm.Gray("→") + " "
		}
		out += p.String()
	}
	return out
}
