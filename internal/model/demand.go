package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandStatus is the lifecycle state of a Demand.
type DemandStatus string

const (
	DemandOpen      DemandStatus = "OPEN"
	DemandFulfilled DemandStatus = "FULFILLED"
	DemandCancelled DemandStatus = "CANCELLED"
)

// ValidDemandStatus reports whether s is a known demand status.
func ValidDemandStatus(s DemandStatus) bool {
	switch s {
	case DemandOpen, DemandFulfilled, DemandCancelled:
		return true
	}
	return false
}

// ItemKind classifies catalog items and the demand items they answer.
type ItemKind string

const (
	KindProduct ItemKind = "PRODUCT"
	KindService ItemKind = "SERVICE"
	KindVenue   ItemKind = "VENUE"
)

// ValidItemKind reports whether k is a known item kind.
func ValidItemKind(k ItemKind) bool {
	switch k {
	case KindProduct, KindService, KindVenue:
		return true
	}
	return false
}

// DemandHeader is the editable part of a Demand.
type DemandHeader struct {
	Description      string
	TotalBudget      *decimal.Decimal
	WeddingDate      *time.Time
	WeddingCity      string
	DeliveryDeadline *time.Time
	Notes            string
}

// Demand is a couple's request for quotes.
type Demand struct {
	ID       string
	CoupleID string
	DemandHeader
	Status    DemandStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []DemandItem
}

// DemandItem is one good, service or venue requested by a Demand.
type DemandItem struct {
	ID           string
	DemandID     string
	Kind         ItemKind
	CategoryID   string
	Description  string
	Quantity     int
	MaxUnitPrice *decimal.Decimal
	Notes        string
}

// Item returns the demand item with the given id.
func (d Demand) Item(id string) (DemandItem, bool) {
	for _, it := range d.Items {
		if it.ID == id {
			return it, true
		}
	}
	return DemandItem{}, false
}

// IsOpen reports whether the demand still accepts quotes.
func (d Demand) IsOpen() bool {
	return d.Status == DemandOpen
}

// CoveredBy reports whether every item of the demand has an ACCEPTED line
// in one of the given ACCEPTED quotes.
func (d Demand) CoveredBy(quotes []Quote) bool {
	if len(d.Items) == 0 {
		return false
	}
	covered := make(map[string]bool, len(d.Items))
	for _, q := range quotes {
		if q.Status != QuoteAccepted || q.DemandID != d.ID {
			continue
		}
		for _, l := range q.Lines {
			if l.Status == LineAccepted {
				covered[l.DemandItemID] = true
			}
		}
	}
	for _, it := range d.Items {
		if !covered[it.ID] {
			return false
		}
	}
	return true
}
