package repository

import (
	"context"

	"casebem/internal/model"
)

// Repository is the composed persistence gateway of the negotiation core.
type Repository interface {
	UnitOfWork
	DemandRepository
	QuoteRepository
	CounterRepository
}

// UnitOfWork runs a function inside one transaction. Row locks taken through
// ForUpdate options are held until fn returns. A nested call joins the
// surrounding transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DemandRepository defines data access for the Demand aggregate.
type DemandRepository interface {
	CreateDemand(ctx context.Context, opt CreateDemandOptions) (model.Demand, error)
	GetOneDemand(ctx context.Context, opt GetOneDemandOptions) (model.Demand, error)
	ListDemands(ctx context.Context, opt ListDemandsOptions) ([]model.Demand, int, error)
	UpdateDemand(ctx context.Context, opt UpdateDemandOptions) error
	UpdateDemandStatus(ctx context.Context, opt UpdateDemandStatusOptions) error
	CreateDemandItem(ctx context.Context, opt CreateDemandItemOptions) error
	UpdateDemandItem(ctx context.Context, opt UpdateDemandItemOptions) error
	DeleteDemandItem(ctx context.Context, opt DeleteDemandItemOptions) error
}

// QuoteRepository defines data access for the Quote aggregate.
type QuoteRepository interface {
	CreateQuote(ctx context.Context, opt CreateQuoteOptions) (model.Quote, error)
	GetOneQuote(ctx context.Context, opt GetOneQuoteOptions) (model.Quote, error)
	ListQuotes(ctx context.Context, opt ListQuotesOptions) ([]model.Quote, int, error)
	UpdateQuote(ctx context.Context, opt UpdateQuoteOptions) error
	// ListExpirableQuotes locks and returns open quotes whose validity ended.
	// Quotes locked by another transaction are skipped, never waited on.
	ListExpirableQuotes(ctx context.Context, opt ListExpirableQuotesOptions) ([]model.Quote, error)
}

// CounterRepository backs the dashboard counters.
type CounterRepository interface {
	CountDemandsByStatus(ctx context.Context, opt CountDemandsOptions) (map[model.DemandStatus]int, error)
	CountQuotesByStatus(ctx context.Context, opt CountQuotesOptions) (map[model.QuoteStatus]int, error)
}
