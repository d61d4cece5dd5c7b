package negotiation

import "casebem/internal/model"

var (
	ErrCoupleOnly      = model.NewError(model.KindForbidden, "only couples can perform this action")
	ErrSupplierOnly    = model.NewError(model.KindForbidden, "only suppliers can perform this action")
	ErrInvalidDecision = model.NewError(model.KindInvalidInput, "decision must be ACCEPT or REJECT")
)
