package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"casebem/internal/model"
	"casebem/internal/query"
	repo "casebem/internal/repository"
)

func (uc *implUseCase) CountersForCouple(ctx context.Context, sc model.Scope) (query.Counters, error) {
	if !sc.IsCouple() {
		return query.Counters{}, query.ErrCoupleOnly
	}

	// the two counts are independent reads
	var (
		demands map[model.DemandStatus]int
		quotes  map[model.QuoteStatus]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		demands, err = uc.counters.CountDemandsByStatus(gctx, repo.CountDemandsOptions{CoupleID: sc.UserID})
		if err != nil {
			uc.l.Errorf(ctx, "uc.CountersForCouple CountDemandsByStatus: %v", err)
		}
		return err
	})
	g.Go(func() error {
		var err error
		quotes, err = uc.counters.CountQuotesByStatus(gctx, repo.CountQuotesOptions{CoupleID: sc.UserID})
		if err != nil {
			uc.l.Errorf(ctx, "uc.CountersForCouple CountQuotesByStatus: %v", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return query.Counters{}, model.StorageError(err)
	}

	out := query.Counters{
		Demands: make(map[model.DemandStatus]int, 3),
		Quotes:  fillQuotes(quotes),
	}
	for _, s := range []model.DemandStatus{model.DemandOpen, model.DemandFulfilled, model.DemandCancelled} {
		out.Demands[s] = demands[s]
	}
	return out, nil
}

func (uc *implUseCase) CountersForSupplier(ctx context.Context, sc model.Scope) (query.Counters, error) {
	if !sc.IsSupplier() {
		return query.Counters{}, query.ErrSupplierOnly
	}

	quotes, err := uc.counters.CountQuotesByStatus(ctx, repo.CountQuotesOptions{SupplierID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CountersForSupplier CountQuotesByStatus: %v", err)
		return query.Counters{}, model.StorageError(err)
	}
	return query.Counters{
		Demands: map[model.DemandStatus]int{},
		Quotes:  fillQuotes(quotes),
	}, nil
}

func fillQuotes(counts map[model.QuoteStatus]int) map[model.QuoteStatus]int {
	out := make(map[model.QuoteStatus]int, len(model.AllQuoteStatuses))
	for _, s := range model.AllQuoteStatuses {
		out[s] = counts[s]
	}
	return out
}
