package usecase

import (
	"context"

	"casebem/internal/demand"
	"casebem/internal/model"
	repo "casebem/internal/repository"
)

// lockOwned locks the demand and checks it belongs to coupleID. A missing
// demand and a demand owned by someone else yield the same error.
func (uc *implUseCase) lockOwned(ctx context.Context, demandID, coupleID string) (model.Demand, error) {
	d, err := uc.repo.GetOneDemand(ctx, repo.GetOneDemandOptions{ID: demandID, ForUpdate: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.lockOwned GetOneDemand: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	if d.ID == "" || d.CoupleID != coupleID {
		return model.Demand{}, demand.ErrNotOwner
	}
	return d, nil
}

// lockEditable is lockOwned plus the freeze rule: the demand must be OPEN and
// carry no blocking quote. A CANCELLED or FULFILLED demand is frozen as well.
func (uc *implUseCase) lockEditable(ctx context.Context, demandID, coupleID string) (model.Demand, error) {
	d, err := uc.lockOwned(ctx, demandID, coupleID)
	if err != nil {
		return model.Demand{}, err
	}
	if !d.IsOpen() {
		return model.Demand{}, demand.ErrClosed
	}

	_, blocking, err := uc.repo.ListQuotes(ctx, repo.ListQuotesOptions{
		DemandID: d.ID,
		Statuses: model.BlockingQuoteStatuses,
		Limit:    1,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.lockEditable ListQuotes: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	if blocking > 0 {
		return model.Demand{}, demand.ErrFrozen
	}
	return d, nil
}

func (uc *implUseCase) reload(ctx context.Context, demandID string) (model.Demand, error) {
	d, err := uc.repo.GetOneDemand(ctx, repo.GetOneDemandOptions{ID: demandID})
	if err != nil {
		uc.l.Errorf(ctx, "uc.reload GetOneDemand: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	if d.ID == "" {
		return model.Demand{}, demand.ErrDemandNotFound
	}
	return d, nil
}
