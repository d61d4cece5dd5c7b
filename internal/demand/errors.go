package demand

import "casebem/internal/model"

var (
	ErrDemandNotFound  = model.NewError(model.KindNotFound, "demand not found")
	ErrItemNotFound    = model.NewError(model.KindNotFound, "demand item not found")
	ErrNotOwner        = model.NewError(model.KindForbidden, "demand is not accessible")
	ErrNotOpen         = model.NewError(model.KindDemandNotOpen, "demand is not open")
	ErrFrozen          = model.NewError(model.KindFrozen, "demand has active quotes")
	ErrClosed          = model.NewError(model.KindFrozen, "demand is closed for edits")
	ErrNoItems         = model.NewError(model.KindInvalidInput, "demand must have at least one item")
	ErrLastItem        = model.NewError(model.KindInvalidInput, "cannot remove the last item of a demand")
	ErrDescription     = model.NewError(model.KindInvalidInput, "description is required")
	ErrNegativeBudget  = model.NewError(model.KindInvalidInput, "total_budget must not be negative")
	ErrItemKind        = model.NewError(model.KindInvalidInput, "item kind must be PRODUCT, SERVICE or VENUE")
	ErrItemCategory    = model.NewError(model.KindInvalidInput, "item category_id is required")
	ErrItemQuantity    = model.NewError(model.KindInvalidInput, "item quantity must be at least 1")
	ErrItemMaxPrice    = model.NewError(model.KindInvalidInput, "item max_unit_price must be positive")
	ErrInvalidStatus   = model.NewError(model.KindInvalidInput, "unknown demand status")
	ErrMissingCoupleID = model.NewError(model.KindInvalidInput, "couple id is required")
)
