package dataset

import (
	"github.com/researchos/dataset-builder/errors"
	"github.com/researchos/dataset-builder/logger"
)

// Ancestry returns e and every node reachable from it by following parent
// links. The set has no order; use Path for a root-to-node sequence.
// Fails with ErrNotFound if e is not a node of this dataset.
func (d *Dataset) Ancestry(e *Entity) (EntitySet, error) {
	if e == nil || !d.tree.graph.Has(e) {
		return nil, errors.NewNotFoundError("entity %v is not part of this dataset", e)
	}
	return d.tree.ancestry(e), nil
}

// Path returns the entities from the root down to e.
func (d *Dataset) Path(e *Entity) ([]*Entity, error) {
	if e == nil || !d.tree.graph.Has(e) {
		return nil, errors.NewNotFoundError("entity %v is not part of this dataset", e)
	}
	var path []*Entity
	for n := e; n != nil; n = d.tree.parent[n.ID] {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Lookup resolves a partial key to an entity.
//
// The deepest level named in the key is the target: candidates are the
// nodes at that level with the requested name, and a candidate matches when
// every (level, name) pair in the key is found among its ancestry. The first
// match is returned.
//
// When names repeat across branches a key that skips levels can match more
// than one candidate; which one is returned then depends on iteration order
// (tree insertion order in this implementation). Use Matches to see all of
// them, or add levels to the key to disambiguate.
func (d *Dataset) Lookup(key Key) (*Entity, error) {
	matches, err := d.match(key, true)
	if err != nil {
		return nil, err
	}
	return matches[0], nil
}

// Matches returns every entity that Lookup would accept for key, in the
// order Lookup considers them. Fails like Lookup when there are none.
func (d *Dataset) Matches(key Key) ([]*Entity, error) {
	return d.match(key, false)
}

func (d *Dataset) match(key Key, first bool) ([]*Entity, error) {
	if len(key) == 0 {
		return nil, errors.NewNotFoundError("empty key matches nothing")
	}

	levels, err := d.hierarchy.Order(key.Levels())
	if err != nil {
		return nil, err
	}
	target := levels[len(levels)-1]
	targetName := key[target.Name]

	var candidates []*Entity
	for _, n := range d.tree.byLevel[target.Name] {
		if n.Name == targetName {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.NewNotFoundError("no %s named %q", target.Name, targetName)
	}

	var matches []*Entity
	for _, c := range candidates {
		ancestry := d.tree.ancestry(c)
		if !satisfies(ancestry, key) {
			continue
		}
		matches = append(matches, c)
		if first {
			break
		}
	}
	if len(matches) == 0 {
		return nil, errors.NewNotFoundError("no %s named %q matches %s", target.Name, targetName, key)
	}

	d.logger.Debugw("Key resolved", logger.FieldKey, key.String(), "candidates", len(candidates), "matches", len(matches))
	return matches, nil
}

func satisfies(ancestry EntitySet, key Key) bool {
	for levelName, name := range key {
		if !ancestry.Has(levelName, name) {
			return false
		}
	}
	return true
}
