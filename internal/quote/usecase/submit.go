package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"casebem/internal/model"
	"casebem/internal/quote"
	repo "casebem/internal/repository"
	"casebem/pkg/money"
)

// SubmitQuote records a PENDING quote for an OPEN demand. The demand row is
// locked so the duplicate check and the insert cannot interleave with
// another submission from the same supplier.
func (uc *implUseCase) SubmitQuote(ctx context.Context, input quote.SubmitInput) (model.Quote, error) {
	if input.SupplierID == "" {
		return model.Quote{}, quote.ErrMissingSupplier
	}

	d, err := uc.repo.GetOneDemand(ctx, repo.GetOneDemandOptions{ID: input.DemandID, ForUpdate: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.SubmitQuote GetOneDemand: %v", err)
		return model.Quote{}, model.StorageError(err)
	}
	if d.ID == "" {
		return model.Quote{}, quote.ErrDemandNotFound
	}
	if !d.IsOpen() {
		return model.Quote{}, quote.ErrDemandNotOpen
	}

	_, active, err := uc.repo.ListQuotes(ctx, repo.ListQuotesOptions{
		DemandID:   d.ID,
		SupplierID: input.SupplierID,
		Statuses:   model.BlockingQuoteStatuses,
		Limit:      1,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.SubmitQuote ListQuotes: %v", err)
		return model.Quote{}, model.StorageError(err)
	}
	if active > 0 {
		return model.Quote{}, quote.ErrDuplicateQuote
	}

	now := uc.now().UTC()
	if err := uc.validateStructure(input, now); err != nil {
		return model.Quote{}, err
	}
	if err := uc.validateReferences(ctx, d, input); err != nil {
		return model.Quote{}, err
	}

	id := uuid.NewString()
	lines := make([]model.QuoteLine, len(input.Lines))
	for i, in := range input.Lines {
		lines[i] = model.QuoteLine{
			ID:           uuid.NewString(),
			QuoteID:      id,
			DemandItemID: in.DemandItemID,
			ItemID:       in.ItemID,
			Quantity:     in.Quantity,
			UnitPrice:    money.Round(in.UnitPrice),
			DiscountPct:  money.Round(in.DiscountPct),
			Status:       model.LinePending,
			Notes:        strings.TrimSpace(in.Notes),
		}
	}

	var validUntil *time.Time
	if input.ValidUntil != nil {
		v := input.ValidUntil.UTC()
		validUntil = &v
	}

	q, err := uc.repo.CreateQuote(ctx, repo.CreateQuoteOptions{
		ID:         id,
		DemandID:   d.ID,
		SupplierID: input.SupplierID,
		CreatedAt:  now,
		ValidUntil: validUntil,
		Status:     model.RecomputeQuoteStatus(lines),
		Notes:      strings.TrimSpace(input.Notes),
		TotalValue: model.TotalValue(lines),
		Lines:      lines,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return model.Quote{}, quote.ErrDuplicateQuote
		}
		uc.l.Errorf(ctx, "uc.SubmitQuote CreateQuote: %v", err)
		return model.Quote{}, model.StorageError(err)
	}
	return q, nil
}

func (uc *implUseCase) validateStructure(input quote.SubmitInput, now time.Time) error {
	if len(input.Lines) == 0 {
		return quote.ErrNoLines
	}
	if input.ValidUntil != nil && !input.ValidUntil.After(now) {
		return quote.ErrValidUntil
	}
	// Amounts are checked as they will be stored, after rounding to cents.
	for i, l := range input.Lines {
		switch {
		case l.Quantity < 1:
			return quote.ErrQuantity.AtLine(i + 1)
		case !money.IsPositive(money.Round(l.UnitPrice)):
			return quote.ErrUnitPrice.AtLine(i + 1)
		case !money.InPercentRange(money.Round(l.DiscountPct)):
			return quote.ErrDiscount.AtLine(i + 1)
		}
	}
	return nil
}

// validateReferences reports the first line whose demand item or catalog
// item does not fit the demand and the supplier.
func (uc *implUseCase) validateReferences(ctx context.Context, d model.Demand, input quote.SubmitInput) error {
	type pair struct{ demandItemID, itemID string }
	seen := make(map[pair]struct{}, len(input.Lines))

	for i, l := range input.Lines {
		di, ok := d.Item(l.DemandItemID)
		if !ok {
			return quote.ErrForeignDemand.AtLine(i + 1)
		}

		it, err := uc.catalog.GetItem(ctx, l.ItemID)
		if err != nil {
			uc.l.Errorf(ctx, "uc.SubmitQuote GetItem: %v", err)
			return model.StorageError(err)
		}
		switch {
		case it.ID == "":
			return quote.ErrUnknownItem.AtLine(i + 1)
		case it.SupplierID != input.SupplierID:
			return quote.ErrForeignItem.AtLine(i + 1)
		case !it.Active:
			return quote.ErrInactiveItem.AtLine(i + 1)
		case it.Kind != di.Kind:
			return quote.ErrKindMismatch.AtLine(i + 1)
		case it.CategoryID != di.CategoryID:
			return quote.ErrCategoryMismatch.AtLine(i + 1)
		}

		k := pair{l.DemandItemID, l.ItemID}
		if _, dup := seen[k]; dup {
			return quote.ErrDuplicateLine.AtLine(i + 1)
		}
		seen[k] = struct{}{}
	}
	return nil
}
