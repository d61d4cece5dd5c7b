package http

import (
	"github.com/gin-gonic/gin"

	negotiationHTTP "casebem/internal/negotiation/delivery/http"
	"casebem/internal/query"
	"casebem/pkg/response"
)

// DemandsByCouple godoc
// @Summary     List my demands
// @Tags        Demands
// @Produce     json
// @Security    Bearer
// @Param       status query    string false "OPEN, FULFILLED or CANCELLED"
// @Param       page   query    int    false "Page, 1-based"
// @Param       limit  query    int    false "Page size"
// @Success     200    {object} demandPageResp
// @Failure     403    {object} response.Resp "Couples only"
// @Router      /api/v1/demands/mine [GET]
func (h *handler) DemandsByCouple(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processDemandsByCoupleReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.uc.DemandsByCouple(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.DemandsByCouple: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newDemandPageResp(page))
}

// OpenDemands godoc
// @Summary     Browse open demands
// @Description Suppliers browse OPEN demands, newest first.
// @Tags        Demands
// @Produce     json
// @Security    Bearer
// @Param       city        query    string false "Wedding city, case-insensitive"
// @Param       category_id query    string false "Item category"
// @Param       kind        query    string false "PRODUCT, SERVICE or VENUE"
// @Param       q           query    string false "Text search on descriptions"
// @Param       page        query    int    false "Page, 1-based"
// @Param       limit       query    int    false "Page size"
// @Success     200         {object} demandPageResp
// @Failure     403         {object} response.Resp "Suppliers only"
// @Router      /api/v1/demands/open [GET]
func (h *handler) OpenDemands(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processOpenDemandsReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.uc.OpenDemands(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.OpenDemands: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newDemandPageResp(page))
}

// GetDemand godoc
// @Summary     Get a demand
// @Tags        Demands
// @Produce     json
// @Security    Bearer
// @Param       id  path     string true "Demand ID"
// @Success     200 {object} negotiationHTTP.DemandResp
// @Failure     404 {object} response.Resp "Not found"
// @Router      /api/v1/demands/{id} [GET]
func (h *handler) GetDemand(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.uc.GetDemand(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.GetDemand: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, negotiationHTTP.NewDemandResp(d))
}

// QuotesForDemand godoc
// @Summary     List quotes on my demand
// @Tags        Quotes
// @Produce     json
// @Security    Bearer
// @Param       id    path     string true  "Demand ID"
// @Param       page  query    int    false "Page, 1-based"
// @Param       limit query    int    false "Page size"
// @Success     200   {object} quotePageResp
// @Failure     404   {object} response.Resp "Not found"
// @Router      /api/v1/demands/{id}/quotes [GET]
func (h *handler) QuotesForDemand(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processPageReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.uc.QuotesForDemand(ctx, sc, query.QuotesForDemandInput{
		DemandID: c.Param("id"),
		Paginate: req.toPaginate(),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.QuotesForDemand: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newQuotePageResp(page))
}

// QuotesBySupplier godoc
// @Summary     List my quotes
// @Tags        Quotes
// @Produce     json
// @Security    Bearer
// @Param       status query    string false "Quote status"
// @Param       page   query    int    false "Page, 1-based"
// @Param       limit  query    int    false "Page size"
// @Success     200    {object} quotePageResp
// @Failure     403    {object} response.Resp "Suppliers only"
// @Router      /api/v1/quotes/mine [GET]
func (h *handler) QuotesBySupplier(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processQuotesBySupplierReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.uc.QuotesBySupplier(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.QuotesBySupplier: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newQuotePageResp(page))
}

// GetQuote godoc
// @Summary     Get a quote
// @Tags        Quotes
// @Produce     json
// @Security    Bearer
// @Param       id  path     string true "Quote ID"
// @Success     200 {object} negotiationHTTP.QuoteResp
// @Failure     404 {object} response.Resp "Not found"
// @Router      /api/v1/quotes/{id} [GET]
func (h *handler) GetQuote(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := h.uc.GetQuote(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.GetQuote: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, negotiationHTTP.NewQuoteResp(q))
}

// Counters godoc
// @Summary     Dashboard counters
// @Description Per-status counts for the caller. Couples get demands and quotes received, suppliers quotes sent.
// @Tags        Dashboard
// @Produce     json
// @Security    Bearer
// @Success     200 {object} countersResp
// @Router      /api/v1/dashboard/counters [GET]
func (h *handler) Counters(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var counters query.Counters
	if sc.IsSupplier() {
		counters, err = h.uc.CountersForSupplier(ctx, sc)
	} else {
		counters, err = h.uc.CountersForCouple(ctx, sc)
	}
	if err != nil {
		h.l.Errorf(ctx, "uc.Counters: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newCountersResp(counters))
}
