package negotiation

import (
	"time"

	"casebem/internal/model"
	"casebem/internal/quote"
)

type PublishDemandInput struct {
	Header model.DemandHeader
	Items  []model.DemandItem
}

type UpdateDemandHeaderInput struct {
	DemandID string
	Header   model.DemandHeader
}

type AddDemandItemInput struct {
	DemandID string
	Item     model.DemandItem
}

type UpdateDemandItemInput struct {
	DemandID string
	ItemID   string
	Item     model.DemandItem
}

type RemoveDemandItemInput struct {
	DemandID string
	ItemID   string
}

type SubmitQuoteInput struct {
	DemandID   string
	ValidUntil *time.Time
	Notes      string
	Lines      []quote.LineInput
}

type DecideLineInput struct {
	QuoteID  string
	LineID   string
	Decision model.Decision
	Reason   string
}
