package negotiation

import (
	"context"
	"time"

	"casebem/internal/model"
)

// UseCase is the single write entry point of the negotiation core. Every
// operation runs in its own unit of work and locks Demand before Quote.
//
//go:generate mockery --name UseCase
type UseCase interface {
	PublishDemand(ctx context.Context, sc model.Scope, input PublishDemandInput) (model.Demand, error)
	UpdateDemandHeader(ctx context.Context, sc model.Scope, input UpdateDemandHeaderInput) (model.Demand, error)
	AddDemandItem(ctx context.Context, sc model.Scope, input AddDemandItemInput) (model.Demand, error)
	UpdateDemandItem(ctx context.Context, sc model.Scope, input UpdateDemandItemInput) (model.Demand, error)
	RemoveDemandItem(ctx context.Context, sc model.Scope, input RemoveDemandItemInput) (model.Demand, error)
	CancelDemand(ctx context.Context, sc model.Scope, demandID string) (model.Demand, error)

	SubmitQuote(ctx context.Context, sc model.Scope, input SubmitQuoteInput) (model.Quote, error)
	WithdrawQuote(ctx context.Context, sc model.Scope, quoteID string) (model.Quote, error)
	DecideLine(ctx context.Context, sc model.Scope, input DecideLineInput) (model.Quote, error)

	// RunExpirySweep expires every open quote whose validity ended before now
	// and returns how many were expired. Safe to re-run.
	RunExpirySweep(ctx context.Context, now time.Time) (int, error)
}
