package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"casebem/internal/model"
	repo "casebem/internal/repository"
)

// CreateQuote inserts the Quote row and all of its lines.
func (r *implRepository) CreateQuote(ctx context.Context, opt repo.CreateQuoteOptions) (model.Quote, error) {
	const query = `
		INSERT INTO quote (id, demand_id, supplier_id, created_at, updated_at, valid_until, status, notes, total_value)
		VALUES ($1, $2, $3, $4, $4, $5, $6, $7, $8)`

	_, err := r.conn(ctx).ExecContext(ctx, query,
		opt.ID, opt.DemandID, opt.SupplierID, opt.CreatedAt, opt.ValidUntil,
		string(opt.Status), nullString(opt.Notes), opt.TotalValue)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateQuote"), err)
		return model.Quote{}, mapError(err, repo.ErrFailedToInsert)
	}

	const lineQuery = `
		INSERT INTO quote_line (id, quote_id, demand_item_id, item_id, quantity, unit_price, discount_pct, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	lines := make([]model.QuoteLine, len(opt.Lines))
	for i, l := range opt.Lines {
		l.QuoteID = opt.ID
		_, err := r.conn(ctx).ExecContext(ctx, lineQuery,
			l.ID, l.QuoteID, l.DemandItemID, l.ItemID, l.Quantity, l.UnitPrice, l.DiscountPct,
			string(l.Status), nullString(l.Notes))
		if err != nil {
			r.l.Errorf(ctx, "%s line %d: %v", r.dsn("CreateQuote"), i, err)
			return model.Quote{}, mapError(err, repo.ErrFailedToInsert)
		}
		lines[i] = l
	}

	return model.Quote{
		ID:         opt.ID,
		DemandID:   opt.DemandID,
		SupplierID: opt.SupplierID,
		CreatedAt:  opt.CreatedAt,
		UpdatedAt:  opt.CreatedAt,
		ValidUntil: opt.ValidUntil,
		Status:     opt.Status,
		Notes:      opt.Notes,
		TotalValue: opt.TotalValue,
		Lines:      lines,
	}, nil
}

// GetOneQuote retrieves a Quote with its lines.
// Returns zero-value Quote (ID == "") when not found.
func (r *implRepository) GetOneQuote(ctx context.Context, opt repo.GetOneQuoteOptions) (model.Quote, error) {
	query := fmt.Sprintf(`SELECT %s FROM quote q WHERE q.id = $1`, quoteColumns)
	if opt.ForUpdate {
		query += " FOR UPDATE"
	}

	q, err := scanQuote(r.conn(ctx).QueryRowContext(ctx, query, opt.ID))
	if err == sql.ErrNoRows {
		return model.Quote{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneQuote"), err)
		return model.Quote{}, mapError(err, repo.ErrFailedToGet)
	}

	lines, err := r.listQuoteLines(ctx, []string{q.ID})
	if err != nil {
		r.l.Errorf(ctx, "%s lines: %v", r.dsn("GetOneQuote"), err)
		return model.Quote{}, repo.ErrFailedToGet
	}
	q.Lines = lines[q.ID]
	return q, nil
}

func (r *implRepository) listQuoteLines(ctx context.Context, quoteIDs []string) (map[string][]model.QuoteLine, error) {
	out := make(map[string][]model.QuoteLine, len(quoteIDs))
	if len(quoteIDs) == 0 {
		return out, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM quote_line WHERE quote_id = ANY($1) ORDER BY quote_id, seq`, quoteLineColumns)
	rows, err := r.conn(ctx).QueryContext(ctx, query, quoteIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanQuoteLine(rows)
		if err != nil {
			return nil, err
		}
		out[l.QuoteID] = append(out[l.QuoteID], l)
	}
	return out, rows.Err()
}

// ListQuotes returns a page of Quotes with their lines and the total count.
func (r *implRepository) ListQuotes(ctx context.Context, opt repo.ListQuotesOptions) ([]model.Quote, int, error) {
	where, args := r.buildQuoteWhere(opt)
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quote q WHERE %s", where)
	if err := r.conn(ctx).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListQuotes"), err)
		return nil, 0, repo.ErrFailedToList
	}

	mods, args := r.buildQuoteListQuery(opt)
	quotes, err := r.queryQuotes(ctx, fmt.Sprintf("SELECT %s FROM quote q %s", quoteColumns, mods), args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListQuotes"), err)
		return nil, 0, mapError(err, repo.ErrFailedToList)
	}
	return quotes, total, nil
}

// queryQuotes runs a quote select and attaches the lines of every row.
func (r *implRepository) queryQuotes(ctx context.Context, query string, args ...any) ([]model.Quote, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		quotes []model.Quote
		ids    []string
	)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := r.listQuoteLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		quotes[i].Lines = lines[quotes[i].ID]
	}
	return quotes, nil
}

// UpdateQuote writes the derived quote fields and the changed lines.
func (r *implRepository) UpdateQuote(ctx context.Context, opt repo.UpdateQuoteOptions) error {
	const query = `
		UPDATE quote SET status = $1, status_reason = $2, total_value = $3, updated_at = $4
		WHERE id = $5`

	_, err := r.conn(ctx).ExecContext(ctx, query,
		string(opt.Status), nullString(opt.StatusReason), opt.TotalValue, opt.UpdatedAt, opt.ID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateQuote"), err)
		return mapError(err, repo.ErrFailedToUpdate)
	}

	const lineQuery = `
		UPDATE quote_line SET status = $1, rejection_reason = $2, decided_at = $3
		WHERE id = $4 AND quote_id = $5`

	for _, l := range opt.Lines {
		_, err := r.conn(ctx).ExecContext(ctx, lineQuery,
			string(l.Status), nullString(l.RejectionReason), l.DecidedAt, l.ID, opt.ID)
		if err != nil {
			r.l.Errorf(ctx, "%s line %s: %v", r.dsn("UpdateQuote"), l.ID, err)
			return mapError(err, repo.ErrFailedToUpdate)
		}
	}
	return nil
}

// ListExpirableQuotes locks a batch of open, elapsed quotes with SKIP LOCKED.
func (r *implRepository) ListExpirableQuotes(ctx context.Context, opt repo.ListExpirableQuotesOptions) ([]model.Quote, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM quote q
		WHERE q.status IN ('PENDING', 'PARTIALLY_ACCEPTED') AND q.valid_until < $1
		ORDER BY q.valid_until
		LIMIT $2
		FOR UPDATE SKIP LOCKED`, quoteColumns)

	limit := opt.Limit
	if limit <= 0 {
		limit = 100
	}
	quotes, err := r.queryQuotes(ctx, query, opt.Now, limit)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListExpirableQuotes"), err)
		return nil, mapError(err, repo.ErrFailedToList)
	}
	return quotes, nil
}
