package usecase

import (
	"context"
	"time"

	"casebem/internal/model"
	"casebem/internal/quote"
	repo "casebem/internal/repository"
)

// WithdrawQuote closes an open quote on behalf of its supplier. Pending lines
// are rejected, accepted lines stay accepted.
func (uc *implUseCase) WithdrawQuote(ctx context.Context, input quote.WithdrawInput) (model.Quote, error) {
	_, q, err := uc.lockQuote(ctx, input.QuoteID)
	if err != nil {
		return model.Quote{}, err
	}
	if q.SupplierID != input.SupplierID {
		return model.Quote{}, quote.ErrNotOwner
	}
	if q.Status == model.QuoteWithdrawn {
		return q, nil
	}
	if !q.Status.IsOpen() {
		return model.Quote{}, quote.ErrQuoteClosed
	}

	changed := q.Close(model.QuoteWithdrawn, model.ReasonQuoteWithdrawn, uc.now().UTC())
	if err := uc.persist(ctx, q, changed); err != nil {
		return model.Quote{}, err
	}
	return q, nil
}

// WithdrawAllForDemand closes every open quote of a demand with reason. The
// caller holds the demand lock.
func (uc *implUseCase) WithdrawAllForDemand(ctx context.Context, demandID, reason string, now time.Time) (int, error) {
	open, _, err := uc.repo.ListQuotes(ctx, repo.ListQuotesOptions{
		DemandID: demandID,
		Statuses: model.OpenQuoteStatuses,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.WithdrawAllForDemand ListQuotes: %v", err)
		return 0, model.StorageError(err)
	}

	n := 0
	for _, o := range open {
		q, err := uc.repo.GetOneQuote(ctx, repo.GetOneQuoteOptions{ID: o.ID, ForUpdate: true})
		if err != nil {
			uc.l.Errorf(ctx, "uc.WithdrawAllForDemand GetOneQuote: %v", err)
			return n, model.StorageError(err)
		}
		if q.ID == "" || !q.Status.IsOpen() {
			continue
		}
		changed := q.Close(model.QuoteWithdrawn, reason, now)
		if err := uc.persist(ctx, q, changed); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ExpireQuotes only locks quote rows, never the demand, and never waits on a
// lock, so it cannot deadlock with Demand then Quote writers.
func (uc *implUseCase) ExpireQuotes(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := uc.repo.ListExpirableQuotes(ctx, repo.ListExpirableQuotesOptions{Now: now, Limit: limit})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ExpireQuotes ListExpirableQuotes: %v", err)
		return 0, model.StorageError(err)
	}

	for i := range due {
		changed := due[i].Close(model.QuoteExpired, model.ReasonExpired, now.UTC())
		if err := uc.persist(ctx, due[i], changed); err != nil {
			return 0, err
		}
	}
	return len(due), nil
}
