package usecase

import (
	"context"

	"casebem/internal/demand"
	"casebem/internal/model"
	"casebem/internal/negotiation"
)

func (uc *implUseCase) PublishDemand(ctx context.Context, sc model.Scope, input negotiation.PublishDemandInput) (d model.Demand, err error) {
	ctx, span := uc.startSpan(ctx, "PublishDemand", sc)
	defer func() { endSpan(span, err) }()

	if err = requireCouple(sc); err != nil {
		return model.Demand{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		d, txErr = uc.demands.CreateDemand(ctx, demand.CreateDemandInput{
			CoupleID: sc.UserID,
			Header:   input.Header,
			Items:    input.Items,
		})
		return txErr
	})
	if err != nil {
		return model.Demand{}, err
	}
	uc.l.Infof(ctx, "uc.PublishDemand: demand %s published with %d items", d.ID, len(d.Items))
	return d, nil
}

func (uc *implUseCase) UpdateDemandHeader(ctx context.Context, sc model.Scope, input negotiation.UpdateDemandHeaderInput) (d model.Demand, err error) {
	ctx, span := uc.startSpan(ctx, "UpdateDemandHeader", sc)
	defer func() { endSpan(span, err) }()

	if err = requireCouple(sc); err != nil {
		return model.Demand{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		d, txErr = uc.demands.UpdateDemandHeader(ctx, demand.UpdateHeaderInput{
			DemandID: input.DemandID,
			CoupleID: sc.UserID,
			Header:   input.Header,
		})
		return txErr
	})
	if err != nil {
		return model.Demand{}, err
	}
	return d, nil
}

func (uc *implUseCase) AddDemandItem(ctx context.Context, sc model.Scope, input negotiation.AddDemandItemInput) (d model.Demand, err error) {
	ctx, span := uc.startSpan(ctx, "AddDemandItem", sc)
	defer func() { endSpan(span, err) }()

	if err = requireCouple(sc); err != nil {
		return model.Demand{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		d, txErr = uc.demands.AddDemandItem(ctx, demand.AddItemInput{
			DemandID: input.DemandID,
			CoupleID: sc.UserID,
			Item:     input.Item,
		})
		return txErr
	})
	if err != nil {
		return model.Demand{}, err
	}
	return d, nil
}

func (uc *implUseCase) UpdateDemandItem(ctx context.Context, sc model.Scope, input negotiation.UpdateDemandItemInput) (d model.Demand, err error) {
	ctx, span := uc.startSpan(ctx, "UpdateDemandItem", sc)
	defer func() { endSpan(span, err) }()

	if err = requireCouple(sc); err != nil {
		return model.Demand{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		d, txErr = uc.demands.UpdateDemandItem(ctx, demand.UpdateItemInput{
			DemandID: input.DemandID,
			CoupleID: sc.UserID,
			ItemID:   input.ItemID,
			Item:     input.Item,
		})
		return txErr
	})
	if err != nil {
		return model.Demand{}, err
	}
	return d, nil
}

func (uc *implUseCase) RemoveDemandItem(ctx context.Context, sc model.Scope, input negotiation.RemoveDemandItemInput) (d model.Demand, err error) {
	ctx, span := uc.startSpan(ctx, "RemoveDemandItem", sc)
	defer func() { endSpan(span, err) }()

	if err = requireCouple(sc); err != nil {
		return model.Demand{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		d, txErr = uc.demands.RemoveDemandItem(ctx, demand.RemoveItemInput{
			DemandID: input.DemandID,
			CoupleID: sc.UserID,
			ItemID:   input.ItemID,
		})
		return txErr
	})
	if err != nil {
		return model.Demand{}, err
	}
	return d, nil
}

// CancelDemand cancels the demand and withdraws its open quotes in the same
// unit of work.
func (uc *implUseCase) CancelDemand(ctx context.Context, sc model.Scope, demandID string) (d model.Demand, err error) {
	ctx, span := uc.startSpan(ctx, "CancelDemand", sc)
	defer func() { endSpan(span, err) }()

	if err = requireCouple(sc); err != nil {
		return model.Demand{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		d, txErr = uc.demands.CancelDemand(ctx, demand.CancelInput{
			DemandID: demandID,
			CoupleID: sc.UserID,
		})
		return txErr
	})
	if err != nil {
		return model.Demand{}, err
	}
	return d, nil
}
