package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Collection.Add when the identifier is taken.
var ErrDuplicateID = errors.New("duplicate identifier")

// Collection is an insertion-ordered set of entities keyed by identifier.
// Not safe for concurrent mutation.
type Collection[T any] struct {
	order []string
	items map[string]T
}

// NewCollection returns an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// Add inserts item under id. Existing entries are never replaced.
func (c *Collection[T]) Add(id string, item T) error {
	if _, ok := c.items[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	c.items[id] = item
	c.order = append(c.order, id)
	return nil
}

// Get returns the entity stored under id.
func (c *Collection[T]) Get(id string) (T, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Has reports whether id is present.
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	return len(c.order)
}

// IDs returns identifiers in insertion order.
func (c *Collection[T]) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// All returns entities in insertion order.
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
