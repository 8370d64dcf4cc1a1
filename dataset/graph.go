package dataset

import (
	"github.com/google/uuid"
)

// Graph is a directed multigraph over entities. Parallel edges are kept, so
// in-degree counts every edge. Nodes and edges iterate in insertion order.
//
// The same structure holds the raw relation graph (singleton entities, may
// have parallel edges and shared children) and the expanded tree.
type Graph struct {
	nodes []*Entity
	index map[uuid.UUID]int
	out   map[uuid.UUID][]*Entity
	in    map[uuid.UUID][]*Entity
	edges int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[uuid.UUID]int),
		out:   make(map[uuid.UUID][]*Entity),
		in:    make(map[uuid.UUID][]*Entity),
	}
}

// AddNode adds e. Adding a node twice is a no-op.
func (g *Graph) AddNode(e *Entity) {
	if _, ok := g.index[e.ID]; ok {
		return
	}
	g.index[e.ID] = len(g.nodes)
	g.nodes = append(g.nodes, e)
}

// AddEdge adds a parent→child edge, adding either node if needed. Repeating
// an edge adds a parallel edge.
func (g *Graph) AddEdge(from, to *Entity) {
	g.AddNode(from)
	g.AddNode(to)
	g.out[from.ID] = append(g.out[from.ID], to)
	g.in[to.ID] = append(g.in[to.ID], from)
	g.edges++
}

// Has reports whether e is a node of g.
func (g *Graph) Has(e *Entity) bool {
	_, ok := g.index[e.ID]
	return ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Entity {
	out := make([]*Entity, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the edge count, parallel edges included.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// InDegree returns the number of edges ending at e.
func (g *Graph) InDegree(e *Entity) int {
	return len(g.in[e.ID])
}

// OutDegree returns the number of edges starting at e.
func (g *Graph) OutDegree(e *Entity) int {
	return len(g.out[e.ID])
}

// Successors returns the distinct children of e in first-edge order.
func (g *Graph) Successors(e *Entity) []*Entity {
	return distinct(g.out[e.ID])
}

// Predecessors returns the distinct parents of e in first-edge order.
func (g *Graph) Predecessors(e *Entity) []*Entity {
	return distinct(g.in[e.ID])
}

// Roots returns the nodes with in-degree zero, in insertion order.
func (g *Graph) Roots() []*Entity {
	var roots []*Entity
	for _, n := range g.nodes {
		if len(g.in[n.ID]) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

func distinct(entities []*Entity) []*Entity {
	if len(entities) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(entities))
	out := make([]*Entity, 0, len(entities))
	for _, e := range entities {
		if !seen[e.ID] {
			seen[e.ID] = true
			out = append(out, e)
		}
	}
	return out
}
