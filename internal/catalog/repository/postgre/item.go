package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casebem/internal/catalog"
	"casebem/internal/model"
	"casebem/pkg/log"
)

var ErrFailedToGet = errors.New("failed to get catalog item")

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a catalog Reader over the item table.
func New(db *sql.DB, l log.Logger) catalog.Reader {
	if db == nil {
		panic("catalog/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("catalog/repository/postgre.%s", method)
}

// GetItem returns zero-value CatalogItem when not found.
func (r *implRepository) GetItem(ctx context.Context, itemID string) (model.CatalogItem, error) {
	const query = `
		SELECT id, supplier_id, category_id, kind, name, base_price, active
		FROM item WHERE id = $1`

	var it model.CatalogItem
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&it.ID, &it.SupplierID, &it.CategoryID, &it.Kind, &it.Name, &it.BasePrice, &it.Active,
	)
	if err == sql.ErrNoRows {
		return model.CatalogItem{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetItem"), err)
		return model.CatalogItem{}, ErrFailedToGet
	}
	return it, nil
}
