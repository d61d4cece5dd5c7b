package http

import (
	"github.com/gin-gonic/gin"

	"casebem/internal/model"
	"casebem/internal/negotiation"
	"casebem/pkg/response"
)

// PublishDemand godoc
// @Summary     Publish a demand
// @Description Creates an OPEN demand with at least one item for the calling couple.
// @Tags        Demands
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body     publishDemandReq true "Demand header and items"
// @Success     201  {object} DemandResp
// @Failure     400  {object} response.Resp "Invalid input"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     403  {object} response.Resp "Forbidden"
// @Failure     503  {object} response.Resp "Storage error"
// @Router      /api/v1/demands [POST]
func (h *handler) PublishDemand(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processPublishDemandReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.uc.PublishDemand(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.PublishDemand: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, NewDemandResp(d))
}

// UpdateDemandHeader godoc
// @Summary     Update a demand header
// @Description Replaces the header of an OPEN demand that has no active quote.
// @Tags        Demands
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id   path     string          true "Demand ID"
// @Param       body body     demandHeaderReq true "Demand header"
// @Success     200  {object} DemandResp
// @Failure     400  {object} response.Resp "Invalid input"
// @Failure     403  {object} response.Resp "Forbidden"
// @Failure     409  {object} response.Resp "Frozen or not open"
// @Router      /api/v1/demands/{id} [PUT]
func (h *handler) UpdateDemandHeader(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processHeaderReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.uc.UpdateDemandHeader(ctx, sc, negotiation.UpdateDemandHeaderInput{
		DemandID: c.Param("id"),
		Header:   req.toHeader(),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateDemandHeader: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, NewDemandResp(d))
}

// AddDemandItem godoc
// @Summary     Add a demand item
// @Tags        Demands
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id   path     string        true "Demand ID"
// @Param       body body     demandItemReq true "Item"
// @Success     200  {object} DemandResp
// @Failure     400  {object} response.Resp "Invalid input"
// @Failure     403  {object} response.Resp "Forbidden"
// @Failure     409  {object} response.Resp "Frozen or not open"
// @Router      /api/v1/demands/{id}/items [POST]
func (h *handler) AddDemandItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processItemReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.uc.AddDemandItem(ctx, sc, negotiation.AddDemandItemInput{
		DemandID: c.Param("id"),
		Item:     req.toItem(),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.AddDemandItem: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, NewDemandResp(d))
}

// UpdateDemandItem godoc
// @Summary     Update a demand item
// @Tags        Demands
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path     string        true "Demand ID"
// @Param       item_id path     string        true "Item ID"
// @Param       body    body     demandItemReq true "Item"
// @Success     200     {object} DemandResp
// @Failure     404     {object} response.Resp "Unknown item"
// @Failure     409     {object} response.Resp "Frozen or not open"
// @Router      /api/v1/demands/{id}/items/{item_id} [PUT]
func (h *handler) UpdateDemandItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processItemReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.uc.UpdateDemandItem(ctx, sc, negotiation.UpdateDemandItemInput{
		DemandID: c.Param("id"),
		ItemID:   c.Param("item_id"),
		Item:     req.toItem(),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateDemandItem: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, NewDemandResp(d))
}

// RemoveDemandItem godoc
// @Summary     Remove a demand item
// @Description The last item of a demand cannot be removed.
// @Tags        Demands
// @Produce     json
// @Security    Bearer
// @Param       id      path     string true "Demand ID"
// @Param       item_id path     string true "Item ID"
// @Success     200     {object} DemandResp
// @Failure     400     {object} response.Resp "Last item"
// @Failure     404     {object} response.Resp "Unknown item"
// @Failure     409     {object} response.Resp "Frozen or not open"
// @Router      /api/v1/demands/{id}/items/{item_id} [DELETE]
func (h *handler) RemoveDemandItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.uc.RemoveDemandItem(ctx, sc, negotiation.RemoveDemandItemInput{
		DemandID: c.Param("id"),
		ItemID:   c.Param("item_id"),
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.RemoveDemandItem: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, NewDemandResp(d))
}

// CancelDemand godoc
// @Summary     Cancel a demand
// @Description Cancels the demand and withdraws its open quotes.
// @Tags        Demands
// @Produce     json
// @Security    Bearer
// @Param       id  path     string true "Demand ID"
// @Success     200 {object} DemandResp
// @Failure     403 {object} response.Resp "Forbidden"
// @Failure     409 {object} response.Resp "Demand fulfilled"
// @Router      /api/v1/demands/{id}/cancel [POST]
func (h *handler) CancelDemand(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.uc.CancelDemand(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.CancelDemand: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, NewDemandResp(d))
}

// SubmitQuote godoc
// @Summary     Submit a quote
// @Description Submits a PENDING quote on an OPEN demand. One active quote per supplier and demand.
// @Tags        Quotes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id   path     string         true "Demand ID"
// @Param       body body     submitQuoteReq true "Quote lines"
// @Success     201  {object} QuoteResp
// @Failure     400  {object} response.Resp "Invalid input or invalid line"
// @Failure     404  {object} response.Resp "Demand not found"
// @Failure     409  {object} response.Resp "Duplicate quote or demand not open"
// @Router      /api/v1/demands/{id}/quotes [POST]
func (h *handler) SubmitQuote(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processSubmitQuoteReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := h.uc.SubmitQuote(ctx, sc, req.toInput(c.Param("id")))
	if err != nil {
		h.l.Errorf(ctx, "uc.SubmitQuote: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.Created(c, NewQuoteResp(q))
}

// WithdrawQuote godoc
// @Summary     Withdraw a quote
// @Tags        Quotes
// @Produce     json
// @Security    Bearer
// @Param       id  path     string true "Quote ID"
// @Success     200 {object} QuoteResp
// @Failure     403 {object} response.Resp "Forbidden"
// @Failure     409 {object} response.Resp "Already decided"
// @Router      /api/v1/quotes/{id}/withdraw [POST]
func (h *handler) WithdrawQuote(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := h.uc.WithdrawQuote(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.WithdrawQuote: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, NewQuoteResp(q))
}

// DecideLine godoc
// @Summary     Accept or reject a quote line
// @Description Repeating the current decision is a no-op. Accepting the last pending line may fulfil the demand.
// @Tags        Quotes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path     string        true "Quote ID"
// @Param       line_id path     string        true "Line ID"
// @Param       body    body     decideLineReq true "Decision"
// @Success     200     {object} QuoteResp
// @Failure     400     {object} response.Resp "Invalid input"
// @Failure     404     {object} response.Resp "Line not found"
// @Failure     409     {object} response.Resp "Already decided or demand not open"
// @Router      /api/v1/quotes/{id}/lines/{line_id}/decision [POST]
func (h *handler) DecideLine(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processDecideLineReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := h.uc.DecideLine(ctx, sc, negotiation.DecideLineInput{
		QuoteID:  c.Param("id"),
		LineID:   c.Param("line_id"),
		Decision: model.Decision(req.Decision),
		Reason:   req.Reason,
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.DecideLine: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, NewQuoteResp(q))
}
