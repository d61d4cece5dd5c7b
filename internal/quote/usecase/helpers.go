package usecase

import (
	"context"

	"casebem/internal/model"
	"casebem/internal/quote"
	repo "casebem/internal/repository"
)

// lockQuote locks the parent demand, then the quote. The unlocked first read
// only resolves the demand id; state is taken from the locked read.
func (uc *implUseCase) lockQuote(ctx context.Context, quoteID string) (model.Demand, model.Quote, error) {
	peek, err := uc.repo.GetOneQuote(ctx, repo.GetOneQuoteOptions{ID: quoteID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.lockQuote GetOneQuote: %v", err)
		return model.Demand{}, model.Quote{}, model.StorageError(err)
	}
	if peek.ID == "" {
		return model.Demand{}, model.Quote{}, quote.ErrNotOwner
	}

	d, err := uc.repo.GetOneDemand(ctx, repo.GetOneDemandOptions{ID: peek.DemandID, ForUpdate: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.lockQuote GetOneDemand: %v", err)
		return model.Demand{}, model.Quote{}, model.StorageError(err)
	}
	q, err := uc.repo.GetOneQuote(ctx, repo.GetOneQuoteOptions{ID: quoteID, ForUpdate: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.lockQuote GetOneQuote: %v", err)
		return model.Demand{}, model.Quote{}, model.StorageError(err)
	}
	if d.ID == "" || q.ID == "" {
		return model.Demand{}, model.Quote{}, quote.ErrNotOwner
	}
	return d, q, nil
}

func (uc *implUseCase) persist(ctx context.Context, q model.Quote, changed []model.QuoteLine) error {
	if err := uc.repo.UpdateQuote(ctx, repo.UpdateQuoteOptions{
		ID:           q.ID,
		Status:       q.Status,
		StatusReason: q.StatusReason,
		TotalValue:   q.TotalValue,
		UpdatedAt:    q.UpdatedAt,
		Lines:        changed,
	}); err != nil {
		uc.l.Errorf(ctx, "uc.persist UpdateQuote: %v", err)
		return model.StorageError(err)
	}
	return nil
}
