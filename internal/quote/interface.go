package quote

import (
	"context"
	"time"

	"casebem/internal/model"
)

// UseCase holds the Quote-level rules and the per-line state machine.
// Mutations run inside a unit of work opened by the caller and lock the
// demand row before the quote row.
//
//go:generate mockery --name UseCase
type UseCase interface {
	SubmitQuote(ctx context.Context, input SubmitInput) (model.Quote, error)
	WithdrawQuote(ctx context.Context, input WithdrawInput) (model.Quote, error)
	AcceptLine(ctx context.Context, input DecideInput) (model.Quote, error)
	RejectLine(ctx context.Context, input DecideInput) (model.Quote, error)
	// ExpireQuotes expires at most limit open quotes whose validity ended
	// before now. Quotes locked elsewhere are left for a later run.
	ExpireQuotes(ctx context.Context, now time.Time, limit int) (int, error)
	WithdrawAllForDemand(ctx context.Context, demandID, reason string, now time.Time) (int, error)

	GetQuote(ctx context.Context, input GetInput) (model.Quote, error)
	ListQuotes(ctx context.Context, input ListInput) (ListOutput, error)
}
