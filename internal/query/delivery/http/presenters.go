package http

import (
	"casebem/internal/model"
	negotiationHTTP "casebem/internal/negotiation/delivery/http"
	"casebem/internal/query"
	"casebem/pkg/paginator"
)

// --- Request DTOs ---

type pageReq struct {
	Page  int `form:"page"  binding:"omitempty,gte=1"`
	Limit int `form:"limit" binding:"omitempty,gte=1"`
}

func (r pageReq) toPaginate() paginator.PaginateQuery {
	return paginator.PaginateQuery{Page: r.Page, Limit: r.Limit}
}

type demandsByCoupleReq struct {
	pageReq
	Status string `form:"status" binding:"omitempty,oneof=OPEN FULFILLED CANCELLED"`
}

func (r demandsByCoupleReq) toInput() query.DemandsByCoupleInput {
	return query.DemandsByCoupleInput{
		Status:   model.DemandStatus(r.Status),
		Paginate: r.toPaginate(),
	}
}

type openDemandsReq struct {
	pageReq
	City       string `form:"city"`
	CategoryID string `form:"category_id"`
	Kind       string `form:"kind"        binding:"omitempty,oneof=PRODUCT SERVICE VENUE"`
	Search     string `form:"q"           binding:"max=255"`
}

func (r openDemandsReq) toInput() query.OpenDemandsInput {
	return query.OpenDemandsInput{
		City:       r.City,
		CategoryID: r.CategoryID,
		Kind:       model.ItemKind(r.Kind),
		Search:     r.Search,
		Paginate:   r.toPaginate(),
	}
}

type quotesBySupplierReq struct {
	pageReq
	Status string `form:"status" binding:"omitempty,oneof=PENDING PARTIALLY_ACCEPTED ACCEPTED REJECTED WITHDRAWN EXPIRED"`
}

func (r quotesBySupplierReq) toInput() query.QuotesBySupplierInput {
	return query.QuotesBySupplierInput{
		Status:   model.QuoteStatus(r.Status),
		Paginate: r.toPaginate(),
	}
}

// --- Response DTOs ---

type demandPageResp struct {
	Demands   []negotiationHTTP.DemandResp `json:"demands"`
	Paginator paginator.Paginator          `json:"paginator"`
}

func newDemandPageResp(p query.DemandPage) demandPageResp {
	out := demandPageResp{
		Demands:   make([]negotiationHTTP.DemandResp, len(p.Demands)),
		Paginator: p.Paginator,
	}
	for i, d := range p.Demands {
		out.Demands[i] = negotiationHTTP.NewDemandResp(d)
	}
	return out
}

type quotePageResp struct {
	Quotes    []negotiationHTTP.QuoteResp `json:"quotes"`
	Paginator paginator.Paginator         `json:"paginator"`
}

func newQuotePageResp(p query.QuotePage) quotePageResp {
	out := quotePageResp{
		Quotes:    make([]negotiationHTTP.QuoteResp, len(p.Quotes)),
		Paginator: p.Paginator,
	}
	for i, q := range p.Quotes {
		out.Quotes[i] = negotiationHTTP.NewQuoteResp(q)
	}
	return out
}

type countersResp struct {
	Demands map[string]int `json:"demands,omitempty"`
	Quotes  map[string]int `json:"quotes"`
}

func newCountersResp(c query.Counters) countersResp {
	out := countersResp{Quotes: make(map[string]int, len(c.Quotes))}
	if len(c.Demands) > 0 {
		out.Demands = make(map[string]int, len(c.Demands))
		for s, n := range c.Demands {
			out.Demands[string(s)] = n
		}
	}
	for s, n := range c.Quotes {
		out.Quotes[string(s)] = n
	}
	return out
}
