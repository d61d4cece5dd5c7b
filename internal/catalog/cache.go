package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"casebem/internal/model"
)

type cachedReader struct {
	next  Reader
	cache *expirable.LRU[string, model.CatalogItem]
}

// NewCached keeps up to size found items for ttl. Misses are not cached.
// A change made in the catalog, such as deactivating an item, is seen by
// callers only once the cached entry expires.
func NewCached(next Reader, size int, ttl time.Duration) Reader {
	if size <= 0 {
		size = 1000
	}
	return &cachedReader{
		next:  next,
		cache: expirable.NewLRU[string, model.CatalogItem](size, nil, ttl),
	}
}

func (c *cachedReader) GetItem(ctx context.Context, itemID string) (model.CatalogItem, error) {
	if it, ok := c.cache.Get(itemID); ok {
		return it, nil
	}
	it, err := c.next.GetItem(ctx, itemID)
	if err != nil {
		return model.CatalogItem{}, err
	}
	if it.ID != "" {
		c.cache.Add(itemID, it)
	}
	return it, nil
}
