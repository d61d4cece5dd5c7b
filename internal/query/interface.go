package query

import (
	"context"

	"casebem/internal/model"
)

// UseCase is the read side of the negotiation core. Resources the caller
// may not see are reported as not found.
//
//go:generate mockery --name UseCase
type UseCase interface {
	DemandsByCouple(ctx context.Context, sc model.Scope, input DemandsByCoupleInput) (DemandPage, error)
	OpenDemands(ctx context.Context, sc model.Scope, input OpenDemandsInput) (DemandPage, error)
	GetDemand(ctx context.Context, sc model.Scope, demandID string) (model.Demand, error)

	QuotesForDemand(ctx context.Context, sc model.Scope, input QuotesForDemandInput) (QuotePage, error)
	QuotesBySupplier(ctx context.Context, sc model.Scope, input QuotesBySupplierInput) (QuotePage, error)
	GetQuote(ctx context.Context, sc model.Scope, quoteID string) (model.Quote, error)

	CountersForCouple(ctx context.Context, sc model.Scope) (Counters, error)
	CountersForSupplier(ctx context.Context, sc model.Scope) (Counters, error)
}
