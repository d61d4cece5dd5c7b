package usecase

import (
	"strings"

	"casebem/internal/demand"
	"casebem/internal/model"
	"casebem/pkg/money"
)

func (uc *implUseCase) validateHeader(h model.DemandHeader) error {
	if strings.TrimSpace(h.Description) == "" {
		return demand.ErrDescription
	}
	if h.TotalBudget != nil && money.Round(*h.TotalBudget).IsNegative() {
		return demand.ErrNegativeBudget
	}
	return nil
}

func (uc *implUseCase) validateItem(it model.DemandItem) error {
	if !model.ValidItemKind(it.Kind) {
		return demand.ErrItemKind
	}
	if strings.TrimSpace(it.CategoryID) == "" {
		return demand.ErrItemCategory
	}
	if it.Quantity < 1 {
		return demand.ErrItemQuantity
	}
	if it.MaxUnitPrice != nil && !money.IsPositive(money.Round(*it.MaxUnitPrice)) {
		return demand.ErrItemMaxPrice
	}
	return nil
}

// normalizeHeader trims free text and rounds the budget to cents.
func (uc *implUseCase) normalizeHeader(h model.DemandHeader) model.DemandHeader {
	h.Description = strings.TrimSpace(h.Description)
	h.WeddingCity = strings.TrimSpace(h.WeddingCity)
	h.Notes = strings.TrimSpace(h.Notes)
	if h.TotalBudget != nil {
		b := money.Round(*h.TotalBudget)
		h.TotalBudget = &b
	}
	return h
}

func (uc *implUseCase) normalizeItem(it model.DemandItem) model.DemandItem {
	it.CategoryID = strings.TrimSpace(it.CategoryID)
	it.Description = strings.TrimSpace(it.Description)
	it.Notes = strings.TrimSpace(it.Notes)
	if it.MaxUnitPrice != nil {
		p := money.Round(*it.MaxUnitPrice)
		it.MaxUnitPrice = &p
	}
	return it
}
