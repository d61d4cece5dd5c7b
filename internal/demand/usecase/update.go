package usecase

import (
	"context"

	"github.com/google/uuid"

	"casebem/internal/demand"
	"casebem/internal/model"
	repo "casebem/internal/repository"
)

// UpdateDemandHeader replaces the header of an editable demand.
func (uc *implUseCase) UpdateDemandHeader(ctx context.Context, input demand.UpdateHeaderInput) (model.Demand, error) {
	if err := uc.validateHeader(input.Header); err != nil {
		return model.Demand{}, err
	}
	d, err := uc.lockEditable(ctx, input.DemandID, input.CoupleID)
	if err != nil {
		return model.Demand{}, err
	}

	if err := uc.repo.UpdateDemand(ctx, repo.UpdateDemandOptions{
		ID:        d.ID,
		Header:    uc.normalizeHeader(input.Header),
		UpdatedAt: uc.now().UTC(),
	}); err != nil {
		uc.l.Errorf(ctx, "uc.UpdateDemandHeader UpdateDemand: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	return uc.reload(ctx, d.ID)
}

// AddDemandItem appends an item to an editable demand.
func (uc *implUseCase) AddDemandItem(ctx context.Context, input demand.AddItemInput) (model.Demand, error) {
	if err := uc.validateItem(input.Item); err != nil {
		return model.Demand{}, err
	}
	d, err := uc.lockEditable(ctx, input.DemandID, input.CoupleID)
	if err != nil {
		return model.Demand{}, err
	}

	it := uc.normalizeItem(input.Item)
	it.ID = uuid.NewString()
	it.DemandID = d.ID
	if err := uc.repo.CreateDemandItem(ctx, repo.CreateDemandItemOptions{
		Item:      it,
		UpdatedAt: uc.now().UTC(),
	}); err != nil {
		uc.l.Errorf(ctx, "uc.AddDemandItem CreateDemandItem: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	return uc.reload(ctx, d.ID)
}

// UpdateDemandItem replaces one item of an editable demand.
func (uc *implUseCase) UpdateDemandItem(ctx context.Context, input demand.UpdateItemInput) (model.Demand, error) {
	if err := uc.validateItem(input.Item); err != nil {
		return model.Demand{}, err
	}
	d, err := uc.lockEditable(ctx, input.DemandID, input.CoupleID)
	if err != nil {
		return model.Demand{}, err
	}
	if _, ok := d.Item(input.ItemID); !ok {
		return model.Demand{}, demand.ErrItemNotFound
	}

	it := uc.normalizeItem(input.Item)
	it.ID = input.ItemID
	it.DemandID = d.ID
	if err := uc.repo.UpdateDemandItem(ctx, repo.UpdateDemandItemOptions{
		Item:      it,
		UpdatedAt: uc.now().UTC(),
	}); err != nil {
		uc.l.Errorf(ctx, "uc.UpdateDemandItem UpdateDemandItem: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	return uc.reload(ctx, d.ID)
}

// RemoveDemandItem deletes one item; the last item of a demand cannot go.
func (uc *implUseCase) RemoveDemandItem(ctx context.Context, input demand.RemoveItemInput) (model.Demand, error) {
	d, err := uc.lockEditable(ctx, input.DemandID, input.CoupleID)
	if err != nil {
		return model.Demand{}, err
	}
	if _, ok := d.Item(input.ItemID); !ok {
		return model.Demand{}, demand.ErrItemNotFound
	}
	if len(d.Items) <= 1 {
		return model.Demand{}, demand.ErrLastItem
	}

	if err := uc.repo.DeleteDemandItem(ctx, repo.DeleteDemandItemOptions{
		DemandID:  d.ID,
		ItemID:    input.ItemID,
		UpdatedAt: uc.now().UTC(),
	}); err != nil {
		uc.l.Errorf(ctx, "uc.RemoveDemandItem DeleteDemandItem: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	return uc.reload(ctx, d.ID)
}
