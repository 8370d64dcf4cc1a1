package dataset

// Flatten converts the raw relation graph into a nested mapping with one
// top-level entry per in-degree-zero node.
//
// Recursion follows outgoing edges without visited tracking. A node reached
// from several parents has its subtree embedded separately under each of
// them, so expansion later gives every parent context its own copy. Sharing
// is neither deduplicated here nor silently accepted: any expanded node that
// ends up with more than one parent is rejected by ValidateTree.
func Flatten(g *Graph) *Mapping {
	root := NewMapping()
	for _, n := range g.Roots() {
		root.Set(n.Name, flattenFrom(g, n))
	}
	return root
}

func flattenFrom(g *Graph, n *Entity) *Mapping {
	m := NewMapping()
	for _, child := range g.Successors(n) {
		m.Set(child.Name, flattenFrom(g, child))
	}
	return m
}
