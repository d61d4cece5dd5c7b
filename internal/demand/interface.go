package demand

import (
	"context"
	"time"

	"casebem/internal/model"
)

// UseCase holds the Demand-level rules. Mutations expect to run inside a
// unit of work opened by the caller; they lock the demand row themselves.
//
//go:generate mockery --name UseCase
type UseCase interface {
	CreateDemand(ctx context.Context, input CreateDemandInput) (model.Demand, error)
	UpdateDemandHeader(ctx context.Context, input UpdateHeaderInput) (model.Demand, error)
	AddDemandItem(ctx context.Context, input AddItemInput) (model.Demand, error)
	UpdateDemandItem(ctx context.Context, input UpdateItemInput) (model.Demand, error)
	RemoveDemandItem(ctx context.Context, input RemoveItemInput) (model.Demand, error)
	CancelDemand(ctx context.Context, input CancelInput) (model.Demand, error)
	// MarkFulfilledIfCovered moves an OPEN demand to FULFILLED when every item
	// has an accepted line in an ACCEPTED quote.
	MarkFulfilledIfCovered(ctx context.Context, demandID string) (model.Demand, error)

	GetDemand(ctx context.Context, input GetInput) (model.Demand, error)
	ListDemandsByCouple(ctx context.Context, input ListByCoupleInput) (ListOutput, error)
	ListOpenDemands(ctx context.Context, input ListOpenInput) (ListOutput, error)
}

// QuoteWithdrawer closes the open quotes of a demand being cancelled.
type QuoteWithdrawer interface {
	WithdrawAllForDemand(ctx context.Context, demandID, reason string, now time.Time) (int, error)
}
