package query

import (
	"casebem/internal/model"
	"casebem/pkg/paginator"
)

type DemandsByCoupleInput struct {
	Status   model.DemandStatus
	Paginate paginator.PaginateQuery
}

type OpenDemandsInput struct {
	City       string
	CategoryID string
	Kind       model.ItemKind
	Search     string
	Paginate   paginator.PaginateQuery
}

type QuotesForDemandInput struct {
	DemandID string
	Paginate paginator.PaginateQuery
}

type QuotesBySupplierInput struct {
	Status   model.QuoteStatus
	Paginate paginator.PaginateQuery
}

type DemandPage struct {
	Demands   []model.Demand
	Paginator paginator.Paginator
}

type QuotePage struct {
	Quotes    []model.Quote
	Paginator paginator.Paginator
}

// Counters holds one entry per status, zero included. Demands is empty for
// suppliers.
type Counters struct {
	Demands map[model.DemandStatus]int
	Quotes  map[model.QuoteStatus]int
}
