package usecase

import (
	"context"
	"errors"

	"casebem/internal/demand"
	"casebem/internal/model"
	"casebem/internal/query"
	"casebem/internal/quote"
	"casebem/pkg/paginator"
)

func (uc *implUseCase) DemandsByCouple(ctx context.Context, sc model.Scope, input query.DemandsByCoupleInput) (query.DemandPage, error) {
	if !sc.IsCouple() {
		return query.DemandPage{}, query.ErrCoupleOnly
	}

	pq := input.Paginate
	pq.Adjust(uc.cfg.DefaultPageSize, uc.cfg.MaxPageSize)
	list := func(pq paginator.PaginateQuery) (demand.ListOutput, error) {
		return uc.demands.ListDemandsByCouple(ctx, demand.ListByCoupleInput{
			CoupleID: sc.UserID,
			Status:   input.Status,
			Limit:    pq.Limit,
			Offset:   pq.Offset(),
		})
	}
	return uc.demandPage(ctx, pq, list)
}

func (uc *implUseCase) OpenDemands(ctx context.Context, sc model.Scope, input query.OpenDemandsInput) (query.DemandPage, error) {
	if !sc.IsSupplier() {
		return query.DemandPage{}, query.ErrSupplierOnly
	}

	pq := input.Paginate
	pq.Adjust(uc.cfg.PublicPageSize, uc.cfg.MaxPageSize)
	list := func(pq paginator.PaginateQuery) (demand.ListOutput, error) {
		return uc.demands.ListOpenDemands(ctx, demand.ListOpenInput{
			CategoryID: input.CategoryID,
			Kind:       input.Kind,
			City:       input.City,
			Search:     input.Search,
			Limit:      pq.Limit,
			Offset:     pq.Offset(),
		})
	}
	return uc.demandPage(ctx, pq, list)
}

// demandPage runs list and, when the page lies past the end, once more on the
// last non-empty page.
func (uc *implUseCase) demandPage(ctx context.Context, pq paginator.PaginateQuery, list func(paginator.PaginateQuery) (demand.ListOutput, error)) (query.DemandPage, error) {
	out, err := list(pq)
	if err != nil {
		uc.l.Errorf(ctx, "uc.demandPage list: %v", err)
		return query.DemandPage{}, err
	}
	if len(out.Demands) == 0 && pq.Clamp(out.Total) {
		if out, err = list(pq); err != nil {
			uc.l.Errorf(ctx, "uc.demandPage list clamped: %v", err)
			return query.DemandPage{}, err
		}
	}
	return query.DemandPage{
		Demands:   out.Demands,
		Paginator: pq.ToPaginator(out.Total, len(out.Demands)),
	}, nil
}

// GetDemand shows a demand to its couple, and to suppliers while it is OPEN
// or when they quoted on it.
func (uc *implUseCase) GetDemand(ctx context.Context, sc model.Scope, demandID string) (model.Demand, error) {
	d, err := uc.demands.GetDemand(ctx, demand.GetInput{DemandID: demandID})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Demand{}, query.ErrDemandNotFound
		}
		uc.l.Errorf(ctx, "uc.GetDemand GetDemand: %v", err)
		return model.Demand{}, err
	}

	switch {
	case sc.IsCouple() && d.CoupleID == sc.UserID:
		return d, nil
	case sc.IsSupplier() && d.IsOpen():
		return d, nil
	case sc.IsSupplier():
		own, err := uc.quotes.ListQuotes(ctx, quote.ListInput{DemandID: d.ID, SupplierID: sc.UserID, Limit: 1})
		if err != nil {
			uc.l.Errorf(ctx, "uc.GetDemand ListQuotes: %v", err)
			return model.Demand{}, err
		}
		if own.Total > 0 {
			return d, nil
		}
	}
	return model.Demand{}, query.ErrDemandNotFound
}
