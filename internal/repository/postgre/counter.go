package postgre

import (
	"context"
	"database/sql"

	"casebem/internal/model"
	repo "casebem/internal/repository"
)

func (r *implRepository) CountDemandsByStatus(ctx context.Context, opt repo.CountDemandsOptions) (map[model.DemandStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM demand WHERE couple_id = $1 GROUP BY status`

	rows, err := r.conn(ctx).QueryContext(ctx, query, opt.CoupleID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CountDemandsByStatus"), err)
		return nil, repo.ErrFailedToCount
	}
	defer rows.Close()

	out := make(map[model.DemandStatus]int)
	for rows.Next() {
		var (
			status model.DemandStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("CountDemandsByStatus"), err)
			return nil, repo.ErrFailedToCount
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *implRepository) CountQuotesByStatus(ctx context.Context, opt repo.CountQuotesOptions) (map[model.QuoteStatus]int, error) {
	where, args := r.buildQuoteWhere(repo.ListQuotesOptions{CoupleID: opt.CoupleID, SupplierID: opt.SupplierID})
	query := "SELECT q.status, COUNT(*) FROM quote q WHERE " + where + " GROUP BY q.status"

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CountQuotesByStatus"), err)
		return nil, repo.ErrFailedToCount
	}
	defer rows.Close()

	return scanQuoteCounts(rows)
}

func scanQuoteCounts(rows *sql.Rows) (map[model.QuoteStatus]int, error) {
	out := make(map[model.QuoteStatus]int)
	for rows.Next() {
		var (
			status model.QuoteStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, repo.ErrFailedToCount
		}
		out[status] = n
	}
	return out, rows.Err()
}
