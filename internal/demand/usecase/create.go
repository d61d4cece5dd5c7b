package usecase

import (
	"context"

	"github.com/google/uuid"

	"casebem/internal/demand"
	"casebem/internal/model"
	repo "casebem/internal/repository"
)

// CreateDemand inserts an OPEN demand together with its items.
func (uc *implUseCase) CreateDemand(ctx context.Context, input demand.CreateDemandInput) (model.Demand, error) {
	if input.CoupleID == "" {
		return model.Demand{}, demand.ErrMissingCoupleID
	}
	if err := uc.validateHeader(input.Header); err != nil {
		return model.Demand{}, err
	}
	if len(input.Items) == 0 {
		return model.Demand{}, demand.ErrNoItems
	}

	id := uuid.NewString()
	items := make([]model.DemandItem, len(input.Items))
	for i, it := range input.Items {
		if err := uc.validateItem(it); err != nil {
			return model.Demand{}, err
		}
		it = uc.normalizeItem(it)
		it.ID = uuid.NewString()
		it.DemandID = id
		items[i] = it
	}

	d, err := uc.repo.CreateDemand(ctx, repo.CreateDemandOptions{
		ID:        id,
		CoupleID:  input.CoupleID,
		Header:    uc.normalizeHeader(input.Header),
		Status:    model.DemandOpen,
		CreatedAt: uc.now().UTC(),
		Items:     items,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.CreateDemand CreateDemand: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	return d, nil
}
