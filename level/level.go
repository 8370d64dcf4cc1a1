// Package level describes the ordered tiers of a dataset hierarchy.
//
// A Hierarchy replaces per-level runtime types with a small tagged
// descriptor: each Level carries its name and its order index, where index 0
// is the root tier. Entities are tagged with a Level instead of having a type
// synthesised per tier.
package level

import (
	"sort"
	"strings"

	"github.com/researchos/dataset-builder/errors"
)

// Level is one tier of the hierarchy.
type Level struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// IsRoot reports whether l is the first tier.
func (l Level) IsRoot() bool {
	return l.Index == 0
}

func (l Level) String() string {
	return l.Name
}

// Column binds a table column to the level its cells instantiate.
type Column struct {
	Column string `json:"column"`
	Level  Level  `json:"level"`
}

// Hierarchy is an immutable, strictly ordered sequence of levels.
// It is safe for concurrent use.
type Hierarchy struct {
	levels  []Level
	byName  map[string]Level
	columns []Column
}

// NewHierarchy creates a hierarchy from level names in root-to-leaf order.
// Names must be non-empty and unique.
func NewHierarchy(names []string) (*Hierarchy, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "hierarchy has no levels")
	}

	h := &Hierarchy{
		levels: make([]Level, 0, len(names)),
		byName: make(map[string]Level, len(names)),
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "level %d has an empty name", i)
		}
		if _, dup := h.byName[name]; dup {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "level %q declared more than once", name)
		}
		l := Level{Name: name, Index: i}
		h.levels = append(h.levels, l)
		h.byName[name] = l
	}
	return h, nil
}

// NewColumnHierarchy creates a hierarchy from column→level bindings in
// hierarchy order. Column names must be unique.
func NewColumnHierarchy(bindings []Binding) (*Hierarchy, error) {
	names := make([]string, len(bindings))
	seen := make(map[string]bool, len(bindings))
	for i, b := range bindings {
		if b.Column == "" {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "hierarchy entry %d has an empty column name", i)
		}
		if seen[b.Column] {
			return nil, errors.Wrapf(errors.ErrConfigInvalid, "column %q mapped more than once", b.Column)
		}
		seen[b.Column] = true
		names[i] = b.Level
	}

	h, err := NewHierarchy(names)
	if err != nil {
		return nil, err
	}
	h.columns = make([]Column, len(bindings))
	for i, b := range bindings {
		h.columns[i] = Column{Column: b.Column, Level: h.levels[i]}
	}
	return h, nil
}

// Binding is an unresolved column→level-name pair, as declared in config.
type Binding struct {
	Column string
	Level  string
}

// Levels returns the levels in hierarchy order.
func (h *Hierarchy) Levels() []Level {
	out := make([]Level, len(h.levels))
	copy(out, h.levels)
	return out
}

// Names returns the level names in hierarchy order.
func (h *Hierarchy) Names() []string {
	out := make([]string, len(h.levels))
	for i, l := range h.levels {
		out[i] = l.Name
	}
	return out
}

// Columns returns the column bindings in hierarchy order. Empty when the
// hierarchy was built from names alone.
func (h *Hierarchy) Columns() []Column {
	out := make([]Column, len(h.columns))
	copy(out, h.columns)
	return out
}

// Len returns the number of levels.
func (h *Hierarchy) Len() int {
	return len(h.levels)
}

// At returns the level at index i.
func (h *Hierarchy) At(i int) (Level, bool) {
	if i < 0 || i >= len(h.levels) {
		return Level{}, false
	}
	return h.levels[i], true
}

// Root returns the first level.
func (h *Hierarchy) Root() Level {
	return h.levels[0]
}

// ByName looks up a level by name.
func (h *Hierarchy) ByName(name string) (Level, bool) {
	l, ok := h.byName[name]
	return l, ok
}

// Contains reports whether l belongs to this hierarchy.
func (h *Hierarchy) Contains(l Level) bool {
	got, ok := h.byName[l.Name]
	return ok && got == l
}

// Predecessor returns the level immediately above l. The root has none.
func (h *Hierarchy) Predecessor(l Level) (Level, bool) {
	if !h.Contains(l) || l.IsRoot() {
		return Level{}, false
	}
	return h.levels[l.Index-1], true
}

// Order returns the given level names sorted by hierarchy index.
// Fails with ErrUnknownLevel on the first name that is not configured.
func (h *Hierarchy) Order(names []string) ([]Level, error) {
	out := make([]Level, 0, len(names))
	for _, name := range names {
		l, ok := h.byName[name]
		if !ok {
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrUnknownLevel, "level %q", name),
				"configured levels: %s", strings.Join(h.Names(), ", "),
			)
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}
