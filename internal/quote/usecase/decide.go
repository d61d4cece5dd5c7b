package usecase

import (
	"context"
	"strings"

	"casebem/internal/model"
	"casebem/internal/quote"
)

// AcceptLine moves a PENDING line to ACCEPTED. Accepting an accepted line is a no-op.
func (uc *implUseCase) AcceptLine(ctx context.Context, input quote.DecideInput) (model.Quote, error) {
	return uc.decide(ctx, input, model.LineAccepted)
}

// RejectLine moves a PENDING line to REJECTED. Rejecting a rejected line is a no-op.
func (uc *implUseCase) RejectLine(ctx context.Context, input quote.DecideInput) (model.Quote, error) {
	return uc.decide(ctx, input, model.LineRejected)
}

func (uc *implUseCase) decide(ctx context.Context, input quote.DecideInput, target model.LineStatus) (model.Quote, error) {
	d, q, err := uc.lockQuote(ctx, input.QuoteID)
	if err != nil {
		return model.Quote{}, err
	}
	if d.CoupleID != input.CoupleID {
		return model.Quote{}, quote.ErrNotOwner
	}

	line := q.Line(input.LineID)
	if line == nil {
		return model.Quote{}, quote.ErrLineNotFound
	}
	if line.Status == target {
		return q, nil
	}
	if line.Status != model.LinePending {
		return model.Quote{}, quote.ErrLineDecided
	}
	if !q.Status.IsOpen() {
		return model.Quote{}, quote.ErrQuoteClosed
	}
	if !d.IsOpen() {
		return model.Quote{}, quote.ErrDemandNotOpen
	}

	now := uc.now().UTC()
	line.Status = target
	line.DecidedAt = &now
	if target == model.LineRejected {
		line.RejectionReason = strings.TrimSpace(input.Reason)
	}
	changed := []model.QuoteLine{*line}

	q.Refresh()
	q.UpdatedAt = now
	if err := uc.persist(ctx, q, changed); err != nil {
		return model.Quote{}, err
	}
	return q, nil
}
