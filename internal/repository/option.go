package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"casebem/internal/model"
)

// CreateDemandOptions holds parameters for inserting a Demand with its items.
type CreateDemandOptions struct {
	ID        string
	CoupleID  string
	Header    model.DemandHeader
	Status    model.DemandStatus
	CreatedAt time.Time
	Items     []model.DemandItem
}

// GetOneDemandOptions selects a single Demand. ForUpdate locks its row for
// the rest of the surrounding transaction.
type GetOneDemandOptions struct {
	ID        string
	ForUpdate bool
}

// ListDemandsOptions holds filter and pagination parameters for listing Demands.
// Search matches the demand description or any item description.
type ListDemandsOptions struct {
	CoupleID   string
	Statuses   []model.DemandStatus
	CategoryID string
	Kind       model.ItemKind
	City       string
	Search     string
	Limit      int
	Offset     int
}

// UpdateDemandOptions replaces the header of a Demand.
type UpdateDemandOptions struct {
	ID        string
	Header    model.DemandHeader
	UpdatedAt time.Time
}

// UpdateDemandStatusOptions moves a Demand to a new status.
type UpdateDemandStatusOptions struct {
	ID        string
	Status    model.DemandStatus
	UpdatedAt time.Time
}

// CreateDemandItemOptions adds an item to a Demand.
type CreateDemandItemOptions struct {
	Item      model.DemandItem
	UpdatedAt time.Time
}

// UpdateDemandItemOptions replaces an item of a Demand.
type UpdateDemandItemOptions struct {
	Item      model.DemandItem
	UpdatedAt time.Time
}

// DeleteDemandItemOptions removes an item from a Demand.
type DeleteDemandItemOptions struct {
	DemandID  string
	ItemID    string
	UpdatedAt time.Time
}

// CreateQuoteOptions holds parameters for inserting a Quote with its lines.
type CreateQuoteOptions struct {
	ID         string
	DemandID   string
	SupplierID string
	CreatedAt  time.Time
	ValidUntil *time.Time
	Status     model.QuoteStatus
	Notes      string
	TotalValue decimal.Decimal
	Lines      []model.QuoteLine
}

// GetOneQuoteOptions selects a single Quote with its lines.
type GetOneQuoteOptions struct {
	ID        string
	ForUpdate bool
}

// ListQuotesOptions holds filter and pagination parameters for listing Quotes.
// CoupleID restricts to quotes on demands owned by that couple.
// A zero Limit returns every match.
type ListQuotesOptions struct {
	DemandID   string
	SupplierID string
	CoupleID   string
	Statuses   []model.QuoteStatus
	Limit      int
	Offset     int
}

// UpdateQuoteOptions persists the derived fields of a Quote and the lines
// whose decision changed.
type UpdateQuoteOptions struct {
	ID           string
	Status       model.QuoteStatus
	StatusReason string
	TotalValue   decimal.Decimal
	UpdatedAt    time.Time
	Lines        []model.QuoteLine
}

// ListExpirableQuotesOptions selects open quotes with valid_until < Now.
type ListExpirableQuotesOptions struct {
	Now   time.Time
	Limit int
}

// CountDemandsOptions scopes demand counters to a couple.
type CountDemandsOptions struct {
	CoupleID string
}

// CountQuotesOptions scopes quote counters to a couple's demands or a supplier.
type CountQuotesOptions struct {
	CoupleID   string
	SupplierID string
}
