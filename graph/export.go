// Package graph converts a built dataset into a node/link structure for
// visualization and JSON export.
package graph

import (
	"time"

	"github.com/google/uuid"

	"github.com/researchos/dataset-builder/dataset"
)

// FromDataset exports ds. Nodes follow the dataset's breadth-first build
// order and links follow parent order, so two exports of the same dataset
// differ only in GeneratedAt.
func FromDataset(ds *dataset.Dataset) *Graph {
	nodes := ds.Nodes()
	g := &Graph{
		Nodes: make([]Node, 0, len(nodes)),
		Links: make([]Link, 0, len(nodes)),
	}

	groups := make(map[uuid.UUID]int, len(nodes))
	for i, r := range ds.Roots() {
		groups[r.ID] = i
	}

	for _, n := range nodes {
		parent, hasParent := ds.Parent(n)
		if hasParent {
			groups[n.ID] = groups[parent.ID]
		}
		g.Nodes = append(g.Nodes, Node{
			ID:      n.ID.String(),
			Type:    n.Level.Name,
			Label:   n.Name,
			Depth:   n.Level.Index,
			Visible: true,
			Group:   groups[n.ID],
			Metadata: map[string]interface{}{
				"path": pathNames(ds, n),
			},
		})
	}

	ds.Edges(func(parent, child *dataset.Entity) {
		g.Links = append(g.Links, Link{
			Source: parent.ID.String(),
			Target: child.ID.String(),
			Type:   RelationParentOf,
			Weight: defaultLinkWeight,
		})
	})

	g.Meta = buildMeta(ds, len(g.Links))
	return g
}

func buildMeta(ds *dataset.Dataset, links int) Meta {
	stats := ds.Stats()
	cfg := ds.Config()

	columns := make(map[string]string)
	for _, c := range ds.Hierarchy().Columns() {
		columns[c.Level.Name] = c.Column
	}

	var nodeTypes []NodeTypeInfo
	for i, lc := range stats.Levels {
		nodeTypes = append(nodeTypes, NodeTypeInfo{
			Type:   lc.Level,
			Label:  lc.Level,
			Color:  colorForDepth(i),
			Depth:  i,
			Column: columns[lc.Level],
			Count:  lc.Count,
		})
	}

	return Meta{
		GeneratedAt: time.Now().UTC(),
		Stats: Stats{
			TotalNodes: stats.Nodes,
			TotalEdges: stats.Edges,
			Roots:      stats.Roots,
			RawNodes:   stats.RawNodes,
			RawEdges:   stats.RawEdges,
			Rows:       stats.Rows,
		},
		Config: map[string]string{
			"data_folder_path":        cfg.DataFolderPath,
			"data_objects_file_paths": cfg.DataObjectsFilePaths,
			"data_objects_table_path": cfg.DataObjectsTablePath,
		},
		NodeTypes: nodeTypes,
		RelationshipTypes: []RelationshipTypeInfo{
			{Type: RelationParentOf, Label: "Parent of", Count: links},
		},
	}
}

func pathNames(ds *dataset.Dataset, e *dataset.Entity) []string {
	path, err := ds.Path(e)
	if err != nil {
		return nil
	}
	names := make([]string, len(path))
	for i, p := range path {
		names[i] = p.Name
	}
	return names
}
