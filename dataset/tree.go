package dataset

import (
	"github.com/google/uuid"
)

// Tree is a validated expanded tree with the indexes queries need. It is
// immutable and safe for concurrent reads.
type Tree struct {
	graph    *Graph
	parent   map[uuid.UUID]*Entity
	children map[uuid.UUID][]*Entity
	byLevel  map[string][]*Entity
}

// newTree indexes g, which must already have passed ValidateTree.
func newTree(g *Graph) *Tree {
	t := &Tree{
		graph:    g,
		parent:   make(map[uuid.UUID]*Entity, g.Len()),
		children: make(map[uuid.UUID][]*Entity, g.Len()),
		byLevel:  make(map[string][]*Entity),
	}
	for _, n := range g.Nodes() {
		if parents := g.Predecessors(n); len(parents) == 1 {
			t.parent[n.ID] = parents[0]
		}
		t.children[n.ID] = g.Successors(n)
		t.byLevel[n.Level.Name] = append(t.byLevel[n.Level.Name], n)
	}
	return t
}

// ancestry walks parent links from e up to its root.
func (t *Tree) ancestry(e *Entity) EntitySet {
	set := EntitySet{}
	for n := e; n != nil; n = t.parent[n.ID] {
		set.Add(n)
	}
	return set
}
