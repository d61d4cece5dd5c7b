package model

import "github.com/shopspring/decimal"

// CatalogItem is a supplier's offering as seen by the negotiation core.
type CatalogItem struct {
	ID         string
	SupplierID string
	CategoryID string
	Kind       ItemKind
	Name       string
	BasePrice  decimal.Decimal
	Active     bool
}
