package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"casebem/internal/model"
)

type LineInput struct {
	DemandItemID string
	ItemID       string
	Quantity     int
	UnitPrice    decimal.Decimal
	DiscountPct  decimal.Decimal
	Notes        string
}

type SubmitInput struct {
	SupplierID string
	DemandID   string
	ValidUntil *time.Time
	Notes      string
	Lines      []LineInput
}

type WithdrawInput struct {
	SupplierID string
	QuoteID    string
}

// DecideInput targets one line. Reason is kept only on rejection.
type DecideInput struct {
	CoupleID string
	QuoteID  string
	LineID   string
	Reason   string
}

type GetInput struct {
	QuoteID   string
	ForUpdate bool
}

type ListInput struct {
	DemandID   string
	SupplierID string
	CoupleID   string
	Status     model.QuoteStatus
	Limit      int
	Offset     int
}

type ListOutput struct {
	Quotes []model.Quote
	Total  int
}
