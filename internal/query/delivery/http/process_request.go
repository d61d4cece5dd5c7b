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

func bindQuery[T any](c *gin.Context) (T, error) {
	var req T
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewValidationError(err)
	}
	return req, nil
}

func (h *handler) processDemandsByCoupleReq(c *gin.Context) (model.Scope, demandsByCoupleReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, demandsByCoupleReq{}, err
	}
	req, err := bindQuery[demandsByCoupleReq](c)
	return sc, req, err
}

func (h *handler) processOpenDemandsReq(c *gin.Context) (model.Scope, openDemandsReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, openDemandsReq{}, err
	}
	req, err := bindQuery[openDemandsReq](c)
	return sc, req, err
}

func (h *handler) processPageReq(c *gin.Context) (model.Scope, pageReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, pageReq{}, err
	}
	req, err := bindQuery[pageReq](c)
	return sc, req, err
}

func (h *handler) processQuotesBySupplierReq(c *gin.Context) (model.Scope, quotesBySupplierReq, error) {
	sc, err := h.processScope(c)
	if err != nil {
		return sc, quotesBySupplierReq{}, err
	}
	req, err := bindQuery[quotesBySupplierReq](c)
	return sc, req, err
}
