package http

import (
	"time"

	"github.com/shopspring/decimal"

	"casebem/internal/model"
	"casebem/internal/negotiation"
	"casebem/internal/quote"
	"casebem/pkg/response"
)

// --- Request DTOs ---

type demandHeaderReq struct {
	Description      string           `json:"description"       binding:"required,max=2000"`
	TotalBudget      *decimal.Decimal `json:"total_budget"`
	WeddingDate      string           `json:"wedding_date"      binding:"omitempty,datetime=2006-01-02"`
	WeddingCity      string           `json:"wedding_city"      binding:"max=255"`
	DeliveryDeadline string           `json:"delivery_deadline" binding:"omitempty,datetime=2006-01-02"`
	Notes            string           `json:"notes"             binding:"max=2000"`
}

func (r demandHeaderReq) toHeader() model.DemandHeader {
	return model.DemandHeader{
		Description:      r.Description,
		TotalBudget:      r.TotalBudget,
		WeddingDate:      parseDate(r.WeddingDate),
		WeddingCity:      r.WeddingCity,
		DeliveryDeadline: parseDate(r.DeliveryDeadline),
		Notes:            r.Notes,
	}
}

type demandItemReq struct {
	Kind         string           `json:"kind"           binding:"required,oneof=PRODUCT SERVICE VENUE"`
	CategoryID   string           `json:"category_id"    binding:"required"`
	Description  string           `json:"description"    binding:"max=2000"`
	Quantity     int              `json:"quantity"       binding:"required,gte=1"`
	MaxUnitPrice *decimal.Decimal `json:"max_unit_price"`
	Notes        string           `json:"notes"          binding:"max=2000"`
}

func (r demandItemReq) toItem() model.DemandItem {
	return model.DemandItem{
		Kind:         model.ItemKind(r.Kind),
		CategoryID:   r.CategoryID,
		Description:  r.Description,
		Quantity:     r.Quantity,
		MaxUnitPrice: r.MaxUnitPrice,
		Notes:        r.Notes,
	}
}

type publishDemandReq struct {
	demandHeaderReq
	Items []demandItemReq `json:"items" binding:"required,min=1,dive"`
}

func (r publishDemandReq) toInput() negotiation.PublishDemandInput {
	items := make([]model.DemandItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = it.toItem()
	}
	return negotiation.PublishDemandInput{Header: r.toHeader(), Items: items}
}

type quoteLineReq struct {
	DemandItemID string          `json:"demand_item_id" binding:"required"`
	ItemID       string          `json:"item_id"        binding:"required"`
	Quantity     int             `json:"quantity"       binding:"required,gte=1"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DiscountPct  decimal.Decimal `json:"discount_pct"`
	Notes        string          `json:"notes"          binding:"max=2000"`
}

type submitQuoteReq struct {
	ValidUntil *time.Time     `json:"valid_until"`
	Notes      string         `json:"notes" binding:"max=2000"`
	Lines      []quoteLineReq `json:"lines" binding:"required,min=1,dive"`
}

func (r submitQuoteReq) toInput(demandID string) negotiation.SubmitQuoteInput {
	lines := make([]quote.LineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = quote.LineInput{
			DemandItemID: l.DemandItemID,
			ItemID:       l.ItemID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			DiscountPct:  l.DiscountPct,
			Notes:        l.Notes,
		}
	}
	return negotiation.SubmitQuoteInput{
		DemandID:   demandID,
		ValidUntil: r.ValidUntil,
		Notes:      r.Notes,
		Lines:      lines,
	}
}

type decideLineReq struct {
	Decision string `json:"decision" binding:"required,oneof=ACCEPT REJECT"`
	Reason   string `json:"reason"   binding:"max=500"`
}

// parseDate expects a value already checked by the datetime binding.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(response.DateFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

// --- Response DTOs ---

type DemandItemResp struct {
	ID           string           `json:"id"`
	Kind         string           `json:"kind"`
	CategoryID   string           `json:"category_id"`
	Description  string           `json:"description,omitempty"`
	Quantity     int              `json:"quantity"`
	MaxUnitPrice *decimal.Decimal `json:"max_unit_price,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

type DemandResp struct {
	ID               string            `json:"id"`
	CoupleID         string            `json:"couple_id"`
	Description      string            `json:"description"`
	TotalBudget      *decimal.Decimal  `json:"total_budget,omitempty"`
	WeddingDate      *response.Date    `json:"wedding_date,omitempty"`
	WeddingCity      string            `json:"wedding_city,omitempty"`
	DeliveryDeadline *response.Date    `json:"delivery_deadline,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Status           string            `json:"status"`
	CreatedAt        response.DateTime `json:"created_at"`
	UpdatedAt        response.DateTime `json:"updated_at"`
	Items            []DemandItemResp  `json:"items"`
}

// NewDemandResp renders a demand with its items.
func NewDemandResp(d model.Demand) DemandResp {
	items := make([]DemandItemResp, len(d.Items))
	for i, it := range d.Items {
		items[i] = DemandItemResp{
			ID:           it.ID,
			Kind:         string(it.Kind),
			CategoryID:   it.CategoryID,
			Description:  it.Description,
			Quantity:     it.Quantity,
			MaxUnitPrice: it.MaxUnitPrice,
			Notes:        it.Notes,
		}
	}
	return DemandResp{
		ID:               d.ID,
		CoupleID:         d.CoupleID,
		Description:      d.Description,
		TotalBudget:      d.TotalBudget,
		WeddingDate:      response.NewDate(d.WeddingDate),
		WeddingCity:      d.WeddingCity,
		DeliveryDeadline: response.NewDate(d.DeliveryDeadline),
		Notes:            d.Notes,
		Status:           string(d.Status),
		CreatedAt:        response.DateTime(d.CreatedAt),
		UpdatedAt:        response.DateTime(d.UpdatedAt),
		Items:            items,
	}
}

type QuoteLineResp struct {
	ID              string             `json:"id"`
	DemandItemID    string             `json:"demand_item_id"`
	ItemID          string             `json:"item_id"`
	Quantity        int                `json:"quantity"`
	UnitPrice       string             `json:"unit_price"`
	DiscountPct     string             `json:"discount_pct"`
	Total           string             `json:"total"`
	Status          string             `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	DecidedAt       *response.DateTime `json:"decided_at,omitempty"`
}

type QuoteResp struct {
	ID           string             `json:"id"`
	DemandID     string             `json:"demand_id"`
	SupplierID   string             `json:"supplier_id"`
	Status       string             `json:"status"`
	StatusReason string             `json:"status_reason,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	TotalValue   string             `json:"total_value"`
	ValidUntil   *response.DateTime `json:"valid_until,omitempty"`
	CreatedAt    response.DateTime  `json:"created_at"`
	UpdatedAt    response.DateTime  `json:"updated_at"`
	Lines        []QuoteLineResp    `json:"lines"`
}

// NewQuoteResp renders a quote with its lines. Amounts are fixed to 2 places.
func NewQuoteResp(q model.Quote) QuoteResp {
	lines := make([]QuoteLineResp, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = QuoteLineResp{
			ID:              l.ID,
			DemandItemID:    l.DemandItemID,
			ItemID:          l.ItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice.StringFixed(2),
			DiscountPct:     l.DiscountPct.StringFixed(2),
			Total:           l.Total().StringFixed(2),
			Status:          string(l.Status),
			RejectionReason: l.RejectionReason,
			Notes:           l.Notes,
			DecidedAt:       response.NewDateTime(l.DecidedAt),
		}
	}
	return QuoteResp{
		ID:           q.ID,
		DemandID:     q.DemandID,
		SupplierID:   q.SupplierID,
		Status:       string(q.Status),
		StatusReason: q.StatusReason,
		Notes:        q.Notes,
		TotalValue:   q.TotalValue.StringFixed(2),
		ValidUntil:   response.NewDateTime(q.ValidUntil),
		CreatedAt:    response.DateTime(q.CreatedAt),
		UpdatedAt:    response.DateTime(q.UpdatedAt),
		Lines:        lines,
	}
}
