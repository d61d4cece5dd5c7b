package usecase

import (
	"context"

	"casebem/internal/model"
	"casebem/internal/quote"
	repo "casebem/internal/repository"
)

// GetQuote returns the quote with its lines or ErrQuoteNotFound.
func (uc *implUseCase) GetQuote(ctx context.Context, input quote.GetInput) (model.Quote, error) {
	q, err := uc.repo.GetOneQuote(ctx, repo.GetOneQuoteOptions{ID: input.QuoteID, ForUpdate: input.ForUpdate})
	if err != nil {
		uc.l.Errorf(ctx, "uc.GetQuote GetOneQuote: %v", err)
		return model.Quote{}, model.StorageError(err)
	}
	if q.ID == "" {
		return model.Quote{}, quote.ErrQuoteNotFound
	}
	return q, nil
}

func (uc *implUseCase) ListQuotes(ctx context.Context, input quote.ListInput) (quote.ListOutput, error) {
	opt := repo.ListQuotesOptions{
		DemandID:   input.DemandID,
		SupplierID: input.SupplierID,
		CoupleID:   input.CoupleID,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	if input.Status != "" {
		if !model.ValidQuoteStatus(input.Status) {
			return quote.ListOutput{}, quote.ErrInvalidStatus
		}
		opt.Statuses = []model.QuoteStatus{input.Status}
	}

	qs, total, err := uc.repo.ListQuotes(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListQuotes ListQuotes: %v", err)
		return quote.ListOutput{}, model.StorageError(err)
	}
	return quote.ListOutput{Quotes: qs, Total: total}, nil
}
