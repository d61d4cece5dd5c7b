package usecase

import (
	"context"

	"casebem/internal/demand"
	"casebem/internal/model"
	repo "casebem/internal/repository"
)

// GetDemand returns the demand with its items or ErrDemandNotFound.
func (uc *implUseCase) GetDemand(ctx context.Context, input demand.GetInput) (model.Demand, error) {
	d, err := uc.repo.GetOneDemand(ctx, repo.GetOneDemandOptions{ID: input.DemandID, ForUpdate: input.ForUpdate})
	if err != nil {
		uc.l.Errorf(ctx, "uc.GetDemand GetOneDemand: %v", err)
		return model.Demand{}, model.StorageError(err)
	}
	if d.ID == "" {
		return model.Demand{}, demand.ErrDemandNotFound
	}
	return d, nil
}

func (uc *implUseCase) ListDemandsByCouple(ctx context.Context, input demand.ListByCoupleInput) (demand.ListOutput, error) {
	opt := repo.ListDemandsOptions{
		CoupleID: input.CoupleID,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if input.Status != "" {
		if !model.ValidDemandStatus(input.Status) {
			return demand.ListOutput{}, demand.ErrInvalidStatus
		}
		opt.Statuses = []model.DemandStatus{input.Status}
	}

	ds, total, err := uc.repo.ListDemands(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListDemandsByCouple ListDemands: %v", err)
		return demand.ListOutput{}, model.StorageError(err)
	}
	return demand.ListOutput{Demands: ds, Total: total}, nil
}

func (uc *implUseCase) ListOpenDemands(ctx context.Context, input demand.ListOpenInput) (demand.ListOutput, error) {
	if input.Kind != "" && !model.ValidItemKind(input.Kind) {
		return demand.ListOutput{}, demand.ErrItemKind
	}

	ds, total, err := uc.repo.ListDemands(ctx, repo.ListDemandsOptions{
		Statuses:   []model.DemandStatus{model.DemandOpen},
		CategoryID: input.CategoryID,
		Kind:       input.Kind,
		City:       input.City,
		Search:     input.Search,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListOpenDemands ListDemands: %v", err)
		return demand.ListOutput{}, model.StorageError(err)
	}
	return demand.ListOutput{Demands: ds, Total: total}, nil
}
