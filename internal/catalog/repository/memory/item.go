// Package memory is a map-backed catalog used by tests and the in-memory
// storage driver.
package memory

import (
	"context"
	"sync"

	"casebem/internal/model"
)

// Catalog is a concurrency-safe in-memory catalog.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]model.CatalogItem
}

// New creates a Catalog seeded with items.
func New(items ...model.CatalogItem) *Catalog {
	c := &Catalog{items: make(map[string]model.CatalogItem, len(items))}
	for _, it := range items {
		c.items[it.ID] = it
	}
	return c
}

// Put adds or replaces an item.
func (c *Catalog) Put(it model.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[it.ID] = it
}

func (c *Catalog) GetItem(ctx context.Context, itemID string) (model.CatalogItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items[itemID], nil
}
