package http

import (
	"github.com/gin-gonic/gin"

	"casebem/internal/model"
	pkgErrors "casebem/pkg/errors"
	"casebem/pkg/scope"
)

func (h *handler) processScope(c *gin.Context) (model.Scope, error) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		return model.Scope{}, pkgErrors.ErrUnauthorized
	}
	return sc, nil
}

func bindJSON[T any](c *gin.Context) (T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewValidationError(err)
	}
	return req, nil
}

func (h *handler) processPublishDemandReq(c *gin.Context) (model.Scope, publishDemandReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, publishDemandReq{}, err
	}
	req, err := bindJSON[publishDemandReq](c)
	return sc, req, err
}

func (h *handler) processHeaderReq(c *gin.Context) (model.Scope, demandHeaderReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, demandHeaderReq{}, err
	}
	req, err := bindJSON[demandHeaderReq](c)
	return sc, req, err
}

func (h *handler) processItemReq(c *gin.Context) (model.Scope, demandItemReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, demandItemReq{}, err
	}
	req, err := bindJSON[demandItemReq](c)
	return sc, req, err
}

func (h *handler) processSubmitQuoteReq(c *gin.Context) (model.Scope, submitQuoteReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, submitQuoteReq{}, err
	}
	req, err := bindJSON[submitQuoteReq](c)
	return sc, req, err
}

func (h *handler) processDecideLineReq(c *gin.Context) (model.Scope, decideLineReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, decideLineReq{}, err
	}
	req, err := bindJSON[decideLineReq](c)
	return sc, req, err
}
