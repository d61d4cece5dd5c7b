package demand

import "casebem/internal/model"

type CreateDemandInput struct {
	CoupleID string
	Header   model.DemandHeader
	Items    []model.DemandItem
}

type UpdateHeaderInput struct {
	DemandID string
	CoupleID string
	Header   model.DemandHeader
}

type AddItemInput struct {
	DemandID string
	CoupleID string
	Item     model.DemandItem
}

type UpdateItemInput struct {
	DemandID string
	CoupleID string
	ItemID   string
	Item     model.DemandItem
}

type RemoveItemInput struct {
	DemandID string
	CoupleID string
	ItemID   string
}

type CancelInput struct {
	DemandID string
	CoupleID string
}

// GetInput loads one demand. ForUpdate locks it for the surrounding unit of work.
type GetInput struct {
	DemandID  string
	ForUpdate bool
}

type ListByCoupleInput struct {
	CoupleID string
	Status   model.DemandStatus
	Limit    int
	Offset   int
}

// ListOpenInput filters the supplier discovery listing. Search matches the
// demand description and item descriptions case-insensitively.
type ListOpenInput struct {
	CategoryID string
	Kind       model.ItemKind
	City       string
	Search     string
	Limit      int
	Offset     int
}

type ListOutput struct {
	Demands []model.Demand
	Total   int
}
