package dataset

import (
	"github.com/researchos/dataset-builder/level"
)

// Registry resolves (level, name) pairs to a single shared entity while a
// table is being ingested. Each ingestion owns its registry, so concurrent
// or repeated builds never share identities.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	entities map[EntityKey]*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[EntityKey]*Entity)}
}

// Resolve returns the entity for (l, name), creating it on first use.
// The second result reports whether the entity was newly created.
func (r *Registry) Resolve(l level.Level, name string) (*Entity, bool) {
	key := EntityKey{Level: l.Name, Name: name}
	if e, ok := r.entities[key]; ok {
		return e, false
	}
	e := NewEntity(l, name)
	r.entities[key] = e
	return e, true
}

// Len returns the number of distinct entities resolved so far.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Reset forgets every entity.
func (r *Registry) Reset() {
	r.entities = make(map[EntityKey]*Entity)
}
