package dataset

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Mapping is the nested name-keyed form of a tree: each entry maps an
// instance name to the mapping of its children. Entries keep insertion
// order. Identity and level are not represented; a level is implied by
// nesting depth.
type Mapping struct {
	entries *orderedmap.OrderedMap[string, *Mapping]
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: orderedmap.New[string, *Mapping]()}
}

// Set stores child under name, replacing any previous entry in place.
func (m *Mapping) Set(name string, child *Mapping) {
	if child == nil {
		child = NewMapping()
	}
	m.entries.Set(name, child)
}

// Get returns the child mapping stored under name.
func (m *Mapping) Get(name string) (*Mapping, bool) {
	return m.entries.Get(name)
}

// Len returns the number of direct entries.
func (m *Mapping) Len() int {
	return m.entries.Len()
}

// Size returns the number of entries at every depth.
func (m *Mapping) Size() int {
	n := 0
	m.Each(func(_ string, child *Mapping) {
		n += 1 + child.Size()
	})
	return n
}

// Depth returns the number of nesting levels; an empty mapping has depth 0.
func (m *Mapping) Depth() int {
	deepest := 0
	m.Each(func(_ string, child *Mapping) {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	})
	if m.Len() == 0 {
		return 0
	}
	return deepest + 1
}

// Names returns the direct entry names in order.
func (m *Mapping) Names() []string {
	names := make([]string, 0, m.Len())
	m.Each(func(name string, _ *Mapping) {
		names = append(names, name)
	})
	return names
}

// Each calls fn for every direct entry in order.
func (m *Mapping) Each(fn func(name string, child *Mapping)) {
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON renders the mapping as nested JSON objects in entry order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	return m.entries.MarshalJSON()
}

// UnmarshalJSON reads nested JSON objects, keeping key order.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	entries := orderedmap.New[string, *Mapping]()
	if err := entries.UnmarshalJSON(data); err != nil {
		return err
	}
	for pair := entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			pair.Value = NewMapping()
		}
	}
	m.entries = entries
	return nil
}
