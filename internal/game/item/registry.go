package item

import (
	"fmt"
	"sort"
)

// Registry holds item definitions indexed by ID.
type Registry struct {
	items map[string]Item
}

// NewRegistry returns a Registry populated with items.
//
// Postcondition: Returns an error if two items share an ID.
func NewRegistry(items ...Item) (*Registry, error) {
	r := &Registry{items: make(map[string]Item, len(items))}
	for _, it := range items {
		if err := r.Register(it); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds it to the registry.
//
// Precondition: it must not be nil.
// Postcondition: Get(it.Info().ID) returns it; returns error if the ID is already registered.
func (r *Registry) Register(it Item) error {
	id := it.Info().ID
	if _, exists := r.items[id]; exists {
		return fmt.Errorf("item: Registry.Register: item ID %q already registered", id)
	}
	r.items[id] = it
	return nil
}

// Replace swaps the registry contents for items.
//
// Postcondition: on error the registry is unchanged; returns an error if two
// items share an ID.
func (r *Registry) Replace(items []Item) error {
	next, err := NewRegistry(items...)
	if err != nil {
		return err
	}
	r.items = next.items
	return nil
}

// Get returns the item for id and whether it was found.
func (r *Registry) Get(id string) (Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// All returns every registered item sorted by ID.
func (r *Registry) All() []Item {
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Info().ID < out[j].Info().ID })
	return out
}

// Len returns the number of registered items.
func (r *Registry) Len() int { return len(r.items) }
