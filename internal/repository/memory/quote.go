package memory

import (
	"context"
	"sort"

	"casebem/internal/model"
	repo "casebem/internal/repository"
)

func (r *implRepository) CreateQuote(ctx context.Context, opt repo.CreateQuoteOptions) (model.Quote, error) {
	if _, exists := r.quote(ctx, opt.ID); exists {
		return model.Quote{}, repo.ErrDuplicateKey
	}

	type lineKey struct{ demandItemID, itemID string }
	seen := make(map[lineKey]struct{}, len(opt.Lines))
	q := model.Quote{
		ID:         opt.ID,
		DemandID:   opt.DemandID,
		SupplierID: opt.SupplierID,
		CreatedAt:  opt.CreatedAt,
		UpdatedAt:  opt.CreatedAt,
		ValidUntil: opt.ValidUntil,
		Status:     opt.Status,
		Notes:      opt.Notes,
		TotalValue: opt.TotalValue,
		Lines:      make([]model.QuoteLine, len(opt.Lines)),
	}
	for i, l := range opt.Lines {
		k := lineKey{l.DemandItemID, l.ItemID}
		if _, dup := seen[k]; dup {
			return model.Quote{}, repo.ErrDuplicateKey
		}
		seen[k] = struct{}{}
		l.QuoteID = opt.ID
		q.Lines[i] = l
	}

	r.stageQuote(ctx, q)
	return cloneQuote(q), nil
}

// GetOneQuote returns a zero Quote when not found.
func (r *implRepository) GetOneQuote(ctx context.Context, opt repo.GetOneQuoteOptions) (model.Quote, error) {
	if opt.ForUpdate {
		if err := r.lock(ctx, quoteKey(opt.ID)); err != nil {
			return model.Quote{}, err
		}
	}
	q, ok := r.quote(ctx, opt.ID)
	if !ok {
		return model.Quote{}, nil
	}
	return q, nil
}

func (r *implRepository) ListQuotes(ctx context.Context, opt repo.ListQuotesOptions) ([]model.Quote, int, error) {
	var owned map[string]bool
	if opt.CoupleID != "" {
		owned = make(map[string]bool)
		for _, d := range r.allDemands(ctx) {
			if d.CoupleID == opt.CoupleID {
				owned[d.ID] = true
			}
		}
	}

	var matched []model.Quote
	for _, q := range r.allQuotes(ctx) {
		if opt.DemandID != "" && q.DemandID != opt.DemandID {
			continue
		}
		if opt.SupplierID != "" && q.SupplierID != opt.SupplierID {
			continue
		}
		if owned != nil && !owned[q.DemandID] {
			continue
		}
		if len(opt.Statuses) > 0 && !containsQuoteStatus(opt.Statuses, q.Status) {
			continue
		}
		matched = append(matched, q)
	}

	sortQuotes(matched)
	return page(matched, opt.Limit, opt.Offset), len(matched), nil
}

func (r *implRepository) UpdateQuote(ctx context.Context, opt repo.UpdateQuoteOptions) error {
	q, ok := r.quote(ctx, opt.ID)
	if !ok {
		return repo.ErrFailedToUpdate
	}
	for _, changed := range opt.Lines {
		l := q.Line(changed.ID)
		if l == nil {
			return repo.ErrFailedToUpdate
		}
		l.Status = changed.Status
		l.RejectionReason = changed.RejectionReason
		l.DecidedAt = changed.DecidedAt
	}
	q.Status = opt.Status
	q.StatusReason = opt.StatusReason
	q.TotalValue = opt.TotalValue
	q.UpdatedAt = opt.UpdatedAt
	r.stageQuote(ctx, q)
	return nil
}

func (r *implRepository) ListExpirableQuotes(ctx context.Context, opt repo.ListExpirableQuotesOptions) ([]model.Quote, error) {
	candidates := r.allQuotes(ctx)
	sortQuotes(candidates)

	var out []model.Quote
	for _, c := range candidates {
		if opt.Limit > 0 && len(out) >= opt.Limit {
			break
		}
		if !c.Status.IsOpen() || !c.IsExpiredAt(opt.Now) {
			continue
		}
		if !r.tryLock(ctx, quoteKey(c.ID)) {
			continue
		}
		// re-read under the lock, the candidate may be stale
		q, ok := r.quote(ctx, c.ID)
		if !ok || !q.Status.IsOpen() || !q.IsExpiredAt(opt.Now) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func containsQuoteStatus(list []model.QuoteStatus, s model.QuoteStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortQuotes(qs []model.Quote) {
	sort.Slice(qs, func(i, j int) bool {
		if qs[i].CreatedAt.Equal(qs[j].CreatedAt) {
			return qs[i].ID > qs[j].ID
		}
		return qs[i].CreatedAt.After(qs[j].CreatedAt)
	})
}
