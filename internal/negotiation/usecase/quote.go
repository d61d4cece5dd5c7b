package usecase

import (
	"context"

	"casebem/internal/model"
	"casebem/internal/negotiation"
	"casebem/internal/quote"
)

func (uc *implUseCase) SubmitQuote(ctx context.Context, sc model.Scope, input negotiation.SubmitQuoteInput) (q model.Quote, err error) {
	ctx, span := uc.startSpan(ctx, "SubmitQuote", sc)
	defer func() { endSpan(span, err) }()

	if err = requireSupplier(sc); err != nil {
		return model.Quote{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		q, txErr = uc.quotes.SubmitQuote(ctx, quote.SubmitInput{
			SupplierID: sc.UserID,
			DemandID:   input.DemandID,
			ValidUntil: input.ValidUntil,
			Notes:      input.Notes,
			Lines:      input.Lines,
		})
		return txErr
	})
	if err != nil {
		return model.Quote{}, err
	}
	uc.l.Infof(ctx, "uc.SubmitQuote: quote %s on demand %s total %s", q.ID, q.DemandID, q.TotalValue.StringFixed(2))
	return q, nil
}

func (uc *implUseCase) WithdrawQuote(ctx context.Context, sc model.Scope, quoteID string) (q model.Quote, err error) {
	ctx, span := uc.startSpan(ctx, "WithdrawQuote", sc)
	defer func() { endSpan(span, err) }()

	if err = requireSupplier(sc); err != nil {
		return model.Quote{}, err
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		q, txErr = uc.quotes.WithdrawQuote(ctx, quote.WithdrawInput{
			SupplierID: sc.UserID,
			QuoteID:    quoteID,
		})
		return txErr
	})
	if err != nil {
		return model.Quote{}, err
	}
	return q, nil
}

// DecideLine accepts or rejects one line. An accept that completes the quote
// runs the demand coverage check under the same locks.
func (uc *implUseCase) DecideLine(ctx context.Context, sc model.Scope, input negotiation.DecideLineInput) (q model.Quote, err error) {
	ctx, span := uc.startSpan(ctx, "DecideLine", sc)
	defer func() { endSpan(span, err) }()

	if err = requireCouple(sc); err != nil {
		return model.Quote{}, err
	}
	if _, ok := input.Decision.Target(); !ok {
		return model.Quote{}, negotiation.ErrInvalidDecision
	}

	decideIn := quote.DecideInput{
		CoupleID: sc.UserID,
		QuoteID:  input.QuoteID,
		LineID:   input.LineID,
		Reason:   input.Reason,
	}
	err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		if input.Decision == model.DecisionAccept {
			q, txErr = uc.quotes.AcceptLine(ctx, decideIn)
		} else {
			q, txErr = uc.quotes.RejectLine(ctx, decideIn)
		}
		if txErr != nil {
			return txErr
		}
		if input.Decision != model.DecisionAccept || q.Status != model.QuoteAccepted {
			return nil
		}

		d, txErr := uc.demands.MarkFulfilledIfCovered(ctx, q.DemandID)
		if txErr != nil {
			return txErr
		}
		if d.Status == model.DemandFulfilled {
			uc.l.Infof(ctx, "uc.DecideLine: demand %s fulfilled", d.ID)
		}
		return nil
	})
	if err != nil {
		return model.Quote{}, err
	}
	return q, nil
}
