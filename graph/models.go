package graph

import (
	"time"
)

// Graph is the export form of a built dataset, shaped for force-directed
// viewers (D3 and similar).
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
	Meta  Meta   `json:"meta"`
}

// Node is one entity of the expanded tree.
type Node struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`  // Level name ("Subject", "Trial")
	Label    string                 `json:"label"` // Instance name
	Depth    int                    `json:"depth"` // Level index, 0 for roots
	Visible  bool                   `json:"visible"`
	Group    int                    `json:"group"` // Index of the root this node descends from
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Link is a parent→child edge.
type Link struct {
	Source string  `json:"source"` // Parent node ID
	Target string  `json:"target"` // Child node ID
	Type   string  `json:"type"`
	Weight float64 `json:"value"` // D3 uses "value"
	Label  string  `json:"label,omitempty"`
}

// Meta contains metadata about the export.
type Meta struct {
	GeneratedAt       time.Time              `json:"generated_at"`
	Stats             Stats                  `json:"stats"`
	Config            map[string]string      `json:"config"`
	NodeTypes         []NodeTypeInfo         `json:"node_types"`
	RelationshipTypes []RelationshipTypeInfo `json:"relationship_types"`
}

// NodeTypeInfo describes one level and how many nodes it holds.
type NodeTypeInfo struct {
	Type   string `json:"type"`
	Label  string `json:"label"`
	Color  string `json:"color,omitempty"`
	Depth  int    `json:"depth"`
	Column string `json:"column,omitempty"` // Source table column, when configured
	Count  int    `json:"count"`
}

// RelationshipTypeInfo describes a link type.
type RelationshipTypeInfo struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats provides graph statistics.
type Stats struct {
	TotalNodes int `json:"total_nodes"`
	TotalEdges int `json:"total_edges"`
	Roots      int `json:"roots"`
	RawNodes   int `json:"raw_nodes,omitempty"`
	RawEdges   int `json:"raw_edges,omitempty"`
	Rows       int `json:"rows,omitempty"`
}
