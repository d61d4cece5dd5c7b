package memory

import (
	"context"

	"casebem/internal/model"
	repo "casebem/internal/repository"
)

func (r *implRepository) CountDemandsByStatus(ctx context.Context, opt repo.CountDemandsOptions) (map[model.DemandStatus]int, error) {
	out := make(map[model.DemandStatus]int)
	for _, d := range r.allDemands(ctx) {
		if opt.CoupleID != "" && d.CoupleID != opt.CoupleID {
			continue
		}
		out[d.Status]++
	}
	return out, nil
}

func (r *implRepository) CountQuotesByStatus(ctx context.Context, opt repo.CountQuotesOptions) (map[model.QuoteStatus]int, error) {
	quotes, _, err := r.ListQuotes(ctx, repo.ListQuotesOptions{
		CoupleID:   opt.CoupleID,
		SupplierID: opt.SupplierID,
	})
	if err != nil {
		return nil, err
	}
	out := make(map[model.QuoteStatus]int)
	for _, q := range quotes {
		out[q.Status]++
	}
	return out, nil
}
