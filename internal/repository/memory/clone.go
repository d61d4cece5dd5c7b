package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"casebem/internal/model"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneDemand(d model.Demand) model.Demand {
	c := d
	c.TotalBudget = cloneDecimal(d.TotalBudget)
	c.WeddingDate = cloneTime(d.WeddingDate)
	c.DeliveryDeadline = cloneTime(d.DeliveryDeadline)
	c.Items = make([]model.DemandItem, len(d.Items))
	for i, it := range d.Items {
		it.MaxUnitPrice = cloneDecimal(it.MaxUnitPrice)
		c.Items[i] = it
	}
	return c
}

func cloneQuote(q model.Quote) model.Quote {
	c := q
	c.ValidUntil = cloneTime(q.ValidUntil)
	c.Lines = make([]model.QuoteLine, len(q.Lines))
	for i, l := range q.Lines {
		l.DecidedAt = cloneTime(l.DecidedAt)
		c.Lines[i] = l
	}
	return c
}
