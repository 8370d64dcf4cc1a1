package dataset

import (
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
)

// ValidateTree checks that every node of an expanded tree has at most one
// parent, and that each parent sits at the level immediately preceding its
// child's. Every node is checked; the first violation is returned.
func ValidateTree(g *Graph, h *level.Hierarchy) error {
	nodes := g.Nodes()

	for _, n := range nodes {
		if d := g.InDegree(n); d > 1 {
			return errors.Wrapf(errors.ErrMultipleParents,
				"%s (%s) has %d parents: %v", n, n.ID, d, entityNames(g.Predecessors(n)))
		}
	}

	for _, n := range nodes {
		if !h.Contains(n.Level) {
			return errors.Wrapf(errors.ErrUnknownLevel, "%s is tagged with unconfigured level %q", n, n.Level.Name)
		}
		parents := g.Predecessors(n)
		if len(parents) == 0 {
			continue
		}
		parent := parents[0]
		want, ok := h.Predecessor(n.Level)
		if !ok {
			return errors.Wrapf(errors.ErrInvalidParentType,
				"%s is at the root level but has parent %s", n, parent)
		}
		if parent.Level != want {
			return errors.Wrapf(errors.ErrInvalidParentType,
				"%s has parent %s, expected a parent at level %s", n, parent, want.Name)
		}
	}

	return nil
}
