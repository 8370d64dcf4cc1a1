package dataset

import (
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
)

type expansion struct {
	parent   *Entity
	children *Mapping
	depth    int
}

// Expand rebuilds a tree from a nested mapping by breadth-first traversal.
// Every mapping position becomes a new entity; nothing is shared, even when
// names repeat. Top-level entries are placed at the root level and each
// nesting depth at the level with that index.
//
// Fails with ErrHierarchyDepthExceeded when the mapping nests deeper than
// the hierarchy has levels.
func Expand(m *Mapping, h *level.Hierarchy) (*Graph, error) {
	tree := NewGraph()
	root := h.Root()

	var queue []expansion
	m.Each(func(name string, children *Mapping) {
		e := NewEntity(root, name)
		tree.AddNode(e)
		queue = append(queue, expansion{parent: e, children: children, depth: 1})
	})

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.children.Len() == 0 {
			continue
		}

		l, ok := h.At(item.depth)
		if !ok {
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrHierarchyDepthExceeded,
					"%s has children at depth %d but only %d levels are configured",
					item.parent, item.depth+1, h.Len()),
				"configured levels: %v", h.Names(),
			)
		}

		item.children.Each(func(name string, grandchildren *Mapping) {
			child := NewEntity(l, name)
			tree.AddEdge(item.parent, child)
			queue = append(queue, expansion{parent: child, children: grandchildren, depth: item.depth + 1})
		})
	}

	return tree, nil
}
