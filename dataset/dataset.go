// Package dataset turns a table of hierarchically related research-data
// entities into a validated tree that answers ancestry and partial-key
// queries.
//
// Construction runs once, start to finish:
//
//	table ──Ingest──▶ raw graph ──Flatten──▶ Mapping ──Expand──▶ tree ──ValidateTree──▶ Dataset
//
// During ingestion every (level, name) pair resolves to one shared entity.
// The raw graph is then flattened into a nested name mapping and expanded
// again, minting a fresh entity for every root-to-node path. The expanded
// tree is the only structure queries see.
//
// A Dataset is immutable once built and safe for concurrent readers.
package dataset

import (
	"time"

	"go.uber.org/zap"

	"github.com/researchos/dataset-builder/config"
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/level"
)

// Dataset is a built, validated and queryable dataset.
type Dataset struct {
	config    config.Config
	hierarchy *level.Hierarchy
	tree      *Tree
	stats     Stats
	logger    *zap.SugaredLogger
}

// Stats summarises a build.
type Stats struct {
	Rows        int           `json:"rows"`
	SkippedRows int           `json:"skipped_rows"`
	RawNodes    int           `json:"raw_nodes"`
	RawEdges    int           `json:"raw_edges"`
	Nodes       int           `json:"nodes"`
	Edges       int           `json:"edges"`
	Roots       int           `json:"roots"`
	Levels      []LevelCount  `json:"levels"`
	Duration    time.Duration `json:"duration_ns"`
}

// LevelCount is the number of expanded nodes at one level.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

func newDataset(cfg *config.Config, h *level.Hierarchy, tree *Tree, log *zap.SugaredLogger) *Dataset {
	d := &Dataset{
		config:    *cfg,
		hierarchy: h,
		tree:      tree,
		logger:    log,
	}
	d.stats.Nodes = tree.graph.Len()
	d.stats.Edges = tree.graph.EdgeCount()
	d.stats.Roots = len(tree.graph.Roots())
	for _, l := range h.Levels() {
		d.stats.Levels = append(d.stats.Levels, LevelCount{Level: l.Name, Count: len(tree.byLevel[l.Name])})
	}
	return d
}

// Config returns the configuration the dataset was built from, including
// pass-through keys in Extra.
func (d *Dataset) Config() config.Config {
	return d.config
}

// Hierarchy returns the dataset's levels.
func (d *Dataset) Hierarchy() *level.Hierarchy {
	return d.hierarchy
}

// Stats returns build statistics.
func (d *Dataset) Stats() Stats {
	return d.stats
}

// Len returns the number of entities in the tree.
func (d *Dataset) Len() int {
	return d.tree.graph.Len()
}

// Nodes returns every entity in breadth-first build order.
func (d *Dataset) Nodes() []*Entity {
	return d.tree.graph.Nodes()
}

// Roots returns the root-level entities in build order.
func (d *Dataset) Roots() []*Entity {
	return d.tree.graph.Roots()
}

// Children returns the direct children of e in build order. Entities outside
// the dataset, nil included, have none.
func (d *Dataset) Children(e *Entity) []*Entity {
	if e == nil || !d.tree.graph.Has(e) {
		return nil
	}
	children := d.tree.children[e.ID]
	out := make([]*Entity, len(children))
	copy(out, children)
	return out
}

// Parent returns the parent of e; roots and entities outside the dataset
// have none.
func (d *Dataset) Parent(e *Entity) (*Entity, bool) {
	if e == nil || !d.tree.graph.Has(e) {
		return nil, false
	}
	p, ok := d.tree.parent[e.ID]
	return p, ok
}

// AtLevel returns every entity at the named level in build order.
func (d *Dataset) AtLevel(levelName string) ([]*Entity, error) {
	if _, ok := d.hierarchy.ByName(levelName); !ok {
		return nil, errors.Wrapf(errors.ErrUnknownLevel, "level %q", levelName)
	}
	entities := d.tree.byLevel[levelName]
	out := make([]*Entity, len(entities))
	copy(out, entities)
	return out, nil
}

// Edges calls fn for every parent→child edge in build order.
func (d *Dataset) Edges(fn func(parent, child *Entity)) {
	for _, n := range d.tree.graph.Nodes() {
		for _, c := range d.tree.children[n.ID] {
			fn(n, c)
		}
	}
}
