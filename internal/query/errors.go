package query

import "casebem/internal/model"

var (
	ErrCoupleOnly     = model.NewError(model.KindForbidden, "only couples can perform this action")
	ErrSupplierOnly   = model.NewError(model.KindForbidden, "only suppliers can perform this action")
	ErrDemandNotFound = model.NewError(model.KindNotFound, "demand not found")
	ErrQuoteNotFound  = model.NewError(model.KindNotFound, "quote not found")
)
