package dataset

import (
	"github.com/google/uuid"

	"github.com/researchos/dataset-builder/level"
)

// Entity is a named occurrence of a level. Its ID is the entity's identity:
// two entities may share level and name and still be distinct.
type Entity struct {
	ID    uuid.UUID   `json:"id"`
	Level level.Level `json:"level"`
	Name  string      `json:"name"`
}

// NewEntity mints a fresh entity with its own identity.
func NewEntity(l level.Level, name string) *Entity {
	return &Entity{
		ID:    uuid.New(),
		Level: l,
		Name:  name,
	}
}

// Key returns the (level, name) pair of the entity.
func (e *Entity) Key() EntityKey {
	return EntityKey{Level: e.Level.Name, Name: e.Name}
}

func (e *Entity) String() string {
	return e.Level.Name + ":" + e.Name
}

// EntityKey identifies an entity by level and name. Unique only during raw
// ingestion.
type EntityKey struct {
	Level string
	Name  string
}

// EntitySet is an unordered set of entities keyed by identity.
type EntitySet map[uuid.UUID]*Entity

// Add inserts e into the set.
func (s EntitySet) Add(e *Entity) {
	s[e.ID] = e
}

// Contains reports whether e is in the set.
func (s EntitySet) Contains(e *Entity) bool {
	_, ok := s[e.ID]
	return ok
}

// Has reports whether some member has the given level and name.
func (s EntitySet) Has(levelName, name string) bool {
	for _, e := range s {
		if e.Level.Name == levelName && e.Name == name {
			return true
		}
	}
	return false
}

// Slice returns the members in unspecified order.
func (s EntitySet) Slice() []*Entity {
	out := make([]*Entity, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	return out
}
