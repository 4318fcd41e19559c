package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/storage"
)

var ErrUnknownDefinition = errors.New("unknown item definition")

// Registry spawns and clones item instances from loaded definitions.
type Registry struct {
	defs storage.Storer[*item.Definition]
}

// New creates a registry backed by the given definition store.
func New(defs storage.Storer[*item.Definition]) *Registry {
	return &Registry{defs: defs}
}

// Definition returns the definition for defId, or nil if unknown.
func (r *Registry) Definition(defId string) *item.Definition {
	return r.defs.Get(defId)
}

// Definitions returns all known definition ids in sorted order.
func (r *Registry) Definitions() []string {
	all := r.defs.GetAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Spawn creates a new instance of defId with a fresh instance id.
// The count is at least one.
func (r *Registry) Spawn(defId string, count int) (*item.Item, error) {
	def := r.defs.Get(defId)
	if def == nil {
		return nil, fmt.Errorf("spawning %q: %w", defId, ErrUnknownDefinition)
	}
	return item.New(uuid.New().String(), defId, def, max(1, count)), nil
}

// Clone duplicates it, keeping its instance id. The definition must still be
// registered.
func (r *Registry) Clone(it *item.Item) (*item.Item, error) {
	if it == nil {
		return nil, fmt.Errorf("cloning nil item")
	}
	if r.defs.Get(it.DefId()) == nil {
		return nil, fmt.Errorf("cloning %q: %w", it.DefId(), ErrUnknownDefinition)
	}
	return it.Clone(), nil
}
