package catalog

import (
	"context"

	"casebem/internal/model"
)

// Reader is the read-only view of the supplier catalog used to validate
// quote lines. GetItem returns a zero CatalogItem (ID == "") when the item
// does not exist.
type Reader interface {
	GetItem(ctx context.Context, itemID string) (model.CatalogItem, error)
}
