package usecase

import (
	"context"

	"casebem/internal/demand"
	"casebem/internal/model"
	repo "casebem/internal/repository"
)

// CancelDemand cancels an OPEN demand and withdraws its open quotes.
// Cancelling an already cancelled demand is a no-op.
func (uc *implUseCase) CancelDemand(ctx context.Context, input demand.CancelInput) (model.Demand, error) {
	d, err := uc.lockOwned(ctx, input.DemandID, input.CoupleID)
	if err != nil {
		return model.Demand{}, err
	}
	switch d.Status {
	case model.DemandCancelled:
		return d, nil
	case model.DemandFulfilled:
		return model.Demand{}, demand.ErrNotOpen
	}

	now := uc.now().UTC()
	n, err := uc.quotes.WithdrawAllForDemand(ctx, d.ID, model.ReasonDemandCancelled, now)
	if err != nil {
		uc.l.Errorf(ctx, "uc.CancelDemand WithdrawAllForDemand: %v", err)
		return model.Demand{}, err
	}

	if err := uc.repo.UpdateDemandStatus(ctx, repo.UpdateDemandStatusOptions{
		ID:        d.ID,
		Status:    model.DemandCancelled,
		UpdatedAt: now,
	}); err != nil {
		uc.l.Errorf(ctx, "uc.CancelDemand UpdateDemandStatus: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	uc.l.Infof(ctx, "uc.CancelDemand: demand %s cancelled, %d quotes withdrawn", d.ID, n)
	return uc.reload(ctx, d.ID)
}

func (uc *implUseCase) MarkFulfilledIfCovered(ctx context.Context, demandID string) (model.Demand, error) {
	d, err := uc.repo.GetOneDemand(ctx, repo.GetOneDemandOptions{ID: demandID, ForUpdate: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.MarkFulfilledIfCovered GetOneDemand: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	if d.ID == "" {
		return model.Demand{}, demand.ErrDemandNotFound
	}
	if !d.IsOpen() {
		return d, nil
	}

	accepted, _, err := uc.repo.ListQuotes(ctx, repo.ListQuotesOptions{
		DemandID: d.ID,
		Statuses: []model.QuoteStatus{model.QuoteAccepted},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.MarkFulfilledIfCovered ListQuotes: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	if !d.CoveredBy(accepted) {
		return d, nil
	}

	if err := uc.repo.UpdateDemandStatus(ctx, repo.UpdateDemandStatusOptions{
		ID:        d.ID,
		Status:    model.DemandFulfilled,
		UpdatedAt: uc.now().UTC(),
	}); err != nil {
		uc.l.Errorf(ctx, "uc.MarkFulfilledIfCovered UpdateDemandStatus: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	return uc.reload(ctx, d.ID)
}
