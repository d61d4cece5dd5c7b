package postgre

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"casebem/internal/model"
)

type scanner interface {
	Scan(dest ...any) error
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

const demandColumns = `d.id, d.couple_id, d.description, d.total_budget, d.wedding_date,
	COALESCE(d.wedding_city, ''), d.delivery_deadline, d.status, COALESCE(d.notes, ''),
	d.created_at, d.updated_at`

func scanDemand(s scanner) (model.Demand, error) {
	var (
		d        model.Demand
		budget   decimal.NullDecimal
		wedding  sql.NullTime
		deadline sql.NullTime
	)
	err := s.Scan(&d.ID, &d.CoupleID, &d.Description, &budget, &wedding,
		&d.WeddingCity, &deadline, &d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return model.Demand{}, err
	}
	d.TotalBudget = decimalPtr(budget)
	d.WeddingDate = timePtr(wedding)
	d.DeliveryDeadline = timePtr(deadline)
	return d, nil
}

const demandItemColumns = `id, demand_id, kind, category_id, description, quantity,
	max_unit_price, COALESCE(notes, '')`

func scanDemandItem(s scanner) (model.DemandItem, error) {
	var (
		it       model.DemandItem
		maxPrice decimal.NullDecimal
	)
	err := s.Scan(&it.ID, &it.DemandID, &it.Kind, &it.CategoryID, &it.Description,
		&it.Quantity, &maxPrice, &it.Notes)
	if err != nil {
		return model.DemandItem{}, err
	}
	it.MaxUnitPrice = decimalPtr(maxPrice)
	return it, nil
}

const quoteColumns = `q.id, q.demand_id, q.supplier_id, q.created_at, q.updated_at, q.valid_until,
	q.status, COALESCE(q.status_reason, ''), COALESCE(q.notes, ''), q.total_value`

func scanQuote(s scanner) (model.Quote, error) {
	var (
		q          model.Quote
		validUntil sql.NullTime
	)
	err := s.Scan(&q.ID, &q.DemandID, &q.SupplierID, &q.CreatedAt, &q.UpdatedAt, &validUntil,
		&q.Status, &q.StatusReason, &q.Notes, &q.TotalValue)
	if err != nil {
		return model.Quote{}, err
	}
	q.ValidUntil = timePtr(validUntil)
	return q, nil
}

const quoteLineColumns = `id, quote_id, demand_item_id, item_id, quantity, unit_price, discount_pct,
	status, COALESCE(rejection_reason, ''), COALESCE(notes, ''), decided_at`

func scanQuoteLine(s scanner) (model.QuoteLine, error) {
	var (
		l       model.QuoteLine
		decided sql.NullTime
	)
	err := s.Scan(&l.ID, &l.QuoteID, &l.DemandItemID, &l.ItemID, &l.Quantity, &l.UnitPrice,
		&l.DiscountPct, &l.Status, &l.RejectionReason, &l.Notes, &decided)
	if err != nil {
		return model.QuoteLine{}, err
	}
	l.DecidedAt = timePtr(decided)
	return l, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
