package catalog

import (
	"errors"
	"fmt"
)

// Item statuses
const (
	StatusActive   = "actif"
	StatusInactive = "inactif"
)

// ErrItemNotFound is returned when an ID is outside the catalog
var ErrItemNotFound = errors.New("item not found")

// Item is a catalog entry as exposed by the list view
type Item struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ItemSummary is the single-item view
type ItemSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var defaultItems = []Item{
	{ID: 1, Name: "Item Alpha", Status: StatusActive},
	{ID: 2, Name: "Item Beta", Status: StatusActive},
	{ID: 3, Name: "Item Gamma", Status: StatusInactive},
}

// Catalog serves a read-only list of items
type Catalog struct {
	items []Item
	ids   map[int]struct{}
}

// New creates a catalog holding the built-in items
func New() *Catalog {
	c := &Catalog{
		items: defaultItems,
		ids:   make(map[int]struct{}, len(defaultItems)),
	}
	for _, it := range c.items {
		c.ids[it.ID] = struct{}{}
	}
	return c
}

// List returns a copy of all items in insertion order
func (c *Catalog) List() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the number of items
func (c *Catalog) Count() int {
	return len(c.items)
}

// Get returns the single-item view for id.
// Only membership is checked; the name is synthesized from the ID.
func (c *Catalog) Get(id int) (ItemSummary, error) {
	if _, ok := c.ids[id]; !ok {
		return ItemSummary{}, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}

	return ItemSummary{
		ID:   id,
		Name: fmt.Sprintf("Item %d", id),
	}, nil
}
