package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"casebem/internal/model"
	repo "casebem/internal/repository"
)

// CreateDemand inserts the Demand row and all of its items.
func (r *implRepository) CreateDemand(ctx context.Context, opt repo.CreateDemandOptions) (model.Demand, error) {
	const query = `
		INSERT INTO demand (id, couple_id, description, total_budget, wedding_date, wedding_city,
			delivery_deadline, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

	h := opt.Header
	_, err := r.conn(ctx).ExecContext(ctx, query,
		opt.ID, opt.CoupleID, h.Description, h.TotalBudget, h.WeddingDate, nullString(h.WeddingCity),
		h.DeliveryDeadline, string(opt.Status), nullString(h.Notes), opt.CreatedAt)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateDemand"), err)
		return model.Demand{}, mapError(err, repo.ErrFailedToInsert)
	}

	items := make([]model.DemandItem, len(opt.Items))
	for i, it := range opt.Items {
		it.DemandID = opt.ID
		if err := r.insertDemandItem(ctx, it); err != nil {
			r.l.Errorf(ctx, "%s item %d: %v", r.dsn("CreateDemand"), i, err)
			return model.Demand{}, mapError(err, repo.ErrFailedToInsert)
		}
		items[i] = it
	}

	return model.Demand{
		ID:           opt.ID,
		CoupleID:     opt.CoupleID,
		DemandHeader: opt.Header,
		Status:       opt.Status,
		CreatedAt:    opt.CreatedAt,
		UpdatedAt:    opt.CreatedAt,
		Items:        items,
	}, nil
}

func (r *implRepository) insertDemandItem(ctx context.Context, it model.DemandItem) error {
	const query = `
		INSERT INTO demand_item (id, demand_id, kind, category_id, description, quantity, max_unit_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.conn(ctx).ExecContext(ctx, query,
		it.ID, it.DemandID, string(it.Kind), it.CategoryID, it.Description, it.Quantity, it.MaxUnitPrice, nullString(it.Notes))
	return err
}

// GetOneDemand retrieves a Demand with its items.
// Returns zero-value Demand (ID == "") when not found.
func (r *implRepository) GetOneDemand(ctx context.Context, opt repo.GetOneDemandOptions) (model.Demand, error) {
	query := fmt.Sprintf(`SELECT %s FROM demand d WHERE d.id = $1`, demandColumns)
	if opt.ForUpdate {
		query += " FOR UPDATE"
	}

	d, err := scanDemand(r.conn(ctx).QueryRowContext(ctx, query, opt.ID))
	if err == sql.ErrNoRows {
		return model.Demand{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneDemand"), err)
		return model.Demand{}, mapError(err, repo.ErrFailedToGet)
	}

	items, err := r.listDemandItems(ctx, []string{d.ID})
	if err != nil {
		r.l.Errorf(ctx, "%s items: %v", r.dsn("GetOneDemand"), err)
		return model.Demand{}, repo.ErrFailedToGet
	}
	d.Items = items[d.ID]
	return d, nil
}

func (r *implRepository) listDemandItems(ctx context.Context, demandIDs []string) (map[string][]model.DemandItem, error) {
	out := make(map[string][]model.DemandItem, len(demandIDs))
	if len(demandIDs) == 0 {
		return out, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM demand_item WHERE demand_id = ANY($1) ORDER BY demand_id, seq`, demandItemColumns)
	rows, err := r.conn(ctx).QueryContext(ctx, query, demandIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanDemandItem(rows)
		if err != nil {
			return nil, err
		}
		out[it.DemandID] = append(out[it.DemandID], it)
	}
	return out, rows.Err()
}

// ListDemands returns a page of Demands with their items and the total count.
func (r *implRepository) ListDemands(ctx context.Context, opt repo.ListDemandsOptions) ([]model.Demand, int, error) {
	// 1. Count total (without pagination)
	where, args := r.buildDemandWhere(opt)
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM demand d WHERE %s", where)
	if err := r.conn(ctx).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListDemands"), err)
		return nil, 0, repo.ErrFailedToList
	}

	// 2. Fetch page
	mods, args := r.buildDemandListQuery(opt)
	query := fmt.Sprintf("SELECT %s FROM demand d %s", demandColumns, mods)
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListDemands"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	var (
		demands []model.Demand
		ids     []string
	)
	for rows.Next() {
		d, err := scanDemand(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListDemands"), err)
			return nil, 0, repo.ErrFailedToList
		}
		demands = append(demands, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListDemands"), err)
		return nil, 0, repo.ErrFailedToList
	}

	items, err := r.listDemandItems(ctx, ids)
	if err != nil {
		r.l.Errorf(ctx, "%s items: %v", r.dsn("ListDemands"), err)
		return nil, 0, repo.ErrFailedToList
	}
	for i := range demands {
		demands[i].Items = items[demands[i].ID]
	}
	return demands, total, nil
}

// UpdateDemand replaces the header fields of a Demand.
func (r *implRepository) UpdateDemand(ctx context.Context, opt repo.UpdateDemandOptions) error {
	const query = `
		UPDATE demand
		SET description = $1, total_budget = $2, wedding_date = $3, wedding_city = $4,
			delivery_deadline = $5, notes = $6, updated_at = $7
		WHERE id = $8`

	h := opt.Header
	_, err := r.conn(ctx).ExecContext(ctx, query,
		h.Description, h.TotalBudget, h.WeddingDate, nullString(h.WeddingCity),
		h.DeliveryDeadline, nullString(h.Notes), opt.UpdatedAt, opt.ID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateDemand"), err)
		return mapError(err, repo.ErrFailedToUpdate)
	}
	return nil
}

// UpdateDemandStatus writes a new Demand status.
func (r *implRepository) UpdateDemandStatus(ctx context.Context, opt repo.UpdateDemandStatusOptions) error {
	const query = `UPDATE demand SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.conn(ctx).ExecContext(ctx, query, string(opt.Status), opt.UpdatedAt, opt.ID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateDemandStatus"), err)
		return mapError(err, repo.ErrFailedToUpdate)
	}
	return nil
}

// CreateDemandItem adds one item to an existing Demand.
func (r *implRepository) CreateDemandItem(ctx context.Context, opt repo.CreateDemandItemOptions) error {
	if err := r.insertDemandItem(ctx, opt.Item); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateDemandItem"), err)
		return mapError(err, repo.ErrFailedToInsert)
	}
	return r.touchDemand(ctx, opt.Item.DemandID, opt.UpdatedAt, "CreateDemandItem")
}

// UpdateDemandItem replaces the fields of one item.
func (r *implRepository) UpdateDemandItem(ctx context.Context, opt repo.UpdateDemandItemOptions) error {
	const query = `
		UPDATE demand_item
		SET kind = $1, category_id = $2, description = $3, quantity = $4, max_unit_price = $5, notes = $6
		WHERE id = $7 AND demand_id = $8`

	it := opt.Item
	res, err := r.conn(ctx).ExecContext(ctx, query,
		string(it.Kind), it.CategoryID, it.Description, it.Quantity, it.MaxUnitPrice, nullString(it.Notes), it.ID, it.DemandID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateDemandItem"), err)
		return mapError(err, repo.ErrFailedToUpdate)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrFailedToUpdate
	}
	return r.touchDemand(ctx, it.DemandID, opt.UpdatedAt, "UpdateDemandItem")
}

// DeleteDemandItem removes one item from a Demand.
func (r *implRepository) DeleteDemandItem(ctx context.Context, opt repo.DeleteDemandItemOptions) error {
	const query = `DELETE FROM demand_item WHERE id = $1 AND demand_id = $2`
	if _, err := r.conn(ctx).ExecContext(ctx, query, opt.ItemID, opt.DemandID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteDemandItem"), err)
		return mapError(err, repo.ErrFailedToDelete)
	}
	return r.touchDemand(ctx, opt.DemandID, opt.UpdatedAt, "DeleteDemandItem")
}

func (r *implRepository) touchDemand(ctx context.Context, id string, at time.Time, method string) error {
	const query = `UPDATE demand SET updated_at = $1 WHERE id = $2`
	if _, err := r.conn(ctx).ExecContext(ctx, query, at, id); err != nil {
		r.l.Errorf(ctx, "%s touch: %v", r.dsn(method), err)
		return mapError(err, repo.ErrFailedToUpdate)
	}
	return nil
}
