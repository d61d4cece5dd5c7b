package quote

import "casebem/internal/model"

var (
	ErrDemandNotFound   = model.NewError(model.KindNotFound, "demand not found")
	ErrQuoteNotFound    = model.NewError(model.KindNotFound, "quote not found")
	ErrLineNotFound     = model.NewError(model.KindNotFound, "quote line not found")
	ErrNotOwner         = model.NewError(model.KindForbidden, "quote is not accessible")
	ErrDemandNotOpen    = model.NewError(model.KindDemandNotOpen, "demand is not open")
	ErrDuplicateQuote   = model.NewError(model.KindDuplicateQuote, "supplier already has an active quote on this demand")
	ErrQuoteClosed      = model.NewError(model.KindAlreadyDecided, "quote is no longer open")
	ErrLineDecided      = model.NewError(model.KindAlreadyDecided, "line already decided")
	ErrNoLines          = model.NewError(model.KindInvalidInput, "quote must have at least one line")
	ErrQuantity         = model.NewError(model.KindInvalidInput, "quantity must be at least 1")
	ErrUnitPrice        = model.NewError(model.KindInvalidInput, "unit_price must be positive")
	ErrDiscount         = model.NewError(model.KindInvalidInput, "discount_pct must be between 0 and 100")
	ErrValidUntil       = model.NewError(model.KindInvalidInput, "valid_until must be in the future")
	ErrInvalidStatus    = model.NewError(model.KindInvalidInput, "unknown quote status")
	ErrMissingSupplier  = model.NewError(model.KindInvalidInput, "supplier id is required")
	ErrForeignDemand    = model.NewError(model.KindInvalidLine, "demand item does not belong to this demand")
	ErrUnknownItem      = model.NewError(model.KindInvalidLine, "catalog item not found")
	ErrForeignItem      = model.NewError(model.KindInvalidLine, "catalog item belongs to another supplier")
	ErrInactiveItem     = model.NewError(model.KindInvalidLine, "catalog item is inactive")
	ErrKindMismatch     = model.NewError(model.KindInvalidLine, "catalog item kind does not match the demand item")
	ErrCategoryMismatch = model.NewError(model.KindInvalidLine, "catalog item category does not match the demand item")
	ErrDuplicateLine    = model.NewError(model.KindInvalidLine, "demand item and catalog item pair repeated")
)
