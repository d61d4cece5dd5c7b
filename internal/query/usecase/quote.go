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

// QuotesForDemand lists every quote of the demand for its couple and only
// the caller's own quotes for a supplier.
func (uc *implUseCase) QuotesForDemand(ctx context.Context, sc model.Scope, input query.QuotesForDemandInput) (query.QuotePage, error) {
	d, err := uc.demands.GetDemand(ctx, demand.GetInput{DemandID: input.DemandID})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return query.QuotePage{}, query.ErrDemandNotFound
		}
		uc.l.Errorf(ctx, "uc.QuotesForDemand GetDemand: %v", err)
		return query.QuotePage{}, err
	}

	filter := quote.ListInput{DemandID: d.ID}
	switch {
	case sc.IsCouple() && d.CoupleID == sc.UserID:
	case sc.IsSupplier():
		filter.SupplierID = sc.UserID
	default:
		return query.QuotePage{}, query.ErrDemandNotFound
	}

	pq := input.Paginate
	pq.Adjust(uc.cfg.DefaultPageSize, uc.cfg.MaxPageSize)
	return uc.quotePage(ctx, pq, filter)
}

func (uc *implUseCase) QuotesBySupplier(ctx context.Context, sc model.Scope, input query.QuotesBySupplierInput) (query.QuotePage, error) {
	if !sc.IsSupplier() {
		return query.QuotePage{}, query.ErrSupplierOnly
	}

	pq := input.Paginate
	pq.Adjust(uc.cfg.DefaultPageSize, uc.cfg.MaxPageSize)
	return uc.quotePage(ctx, pq, quote.ListInput{SupplierID: sc.UserID, Status: input.Status})
}

func (uc *implUseCase) quotePage(ctx context.Context, pq paginator.PaginateQuery, filter quote.ListInput) (query.QuotePage, error) {
	list := func() (quote.ListOutput, error) {
		filter.Limit = pq.Limit
		filter.Offset = pq.Offset()
		return uc.quotes.ListQuotes(ctx, filter)
	}

	out, err := list()
	if err != nil {
		uc.l.Errorf(ctx, "uc.quotePage ListQuotes: %v", err)
		return query.QuotePage{}, err
	}
	if len(out.Quotes) == 0 && pq.Clamp(out.Total) {
		if out, err = list(); err != nil {
			uc.l.Errorf(ctx, "uc.quotePage ListQuotes clamped: %v", err)
			return query.QuotePage{}, err
		}
	}
	return query.QuotePage{
		Quotes:    out.Quotes,
		Paginator: pq.ToPaginator(out.Total, len(out.Quotes)),
	}, nil
}

// GetQuote shows a quote to its supplier and to the couple owning the demand.
func (uc *implUseCase) GetQuote(ctx context.Context, sc model.Scope, quoteID string) (model.Quote, error) {
	q, err := uc.quotes.GetQuote(ctx, quote.GetInput{QuoteID: quoteID})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Quote{}, query.ErrQuoteNotFound
		}
		uc.l.Errorf(ctx, "uc.GetQuote GetQuote: %v", err)
		return model.Quote{}, err
	}

	switch {
	case sc.IsSupplier() && q.SupplierID == sc.UserID:
		return q, nil
	case sc.IsCouple():
		d, err := uc.demands.GetDemand(ctx, demand.GetInput{DemandID: q.DemandID})
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			uc.l.Errorf(ctx, "uc.GetQuote GetDemand: %v", err)
			return model.Quote{}, err
		}
		if err == nil && d.CoupleID == sc.UserID {
			return q, nil
		}
	}
	return model.Quote{}, query.ErrQuoteNotFound
}
