package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RunExpirySweep expires due quotes in batches, one unit of work per batch,
// until a batch comes back short.
func (uc *implUseCase) RunExpirySweep(ctx context.Context, now time.Time) (total int, err error) {
	ctx, span := uc.tracer.Start(ctx, "negotiation.RunExpirySweep")
	defer func() {
		span.SetAttributes(attribute.Int("quotes.expired", total))
		endSpan(span, err)
	}()

	for {
		if uc.cfg.SweepLimiter != nil {
			if err = uc.cfg.SweepLimiter.Wait(ctx); err != nil {
				return total, err
			}
		}

		var n int
		err = uc.uow.WithinTx(ctx, func(ctx context.Context) error {
			var txErr error
			n, txErr = uc.quotes.ExpireQuotes(ctx, now, uc.cfg.SweepBatchSize)
			return txErr
		})
		if err != nil {
			uc.l.Errorf(ctx, "uc.RunExpirySweep ExpireQuotes: %v", err)
			return total, err
		}
		total += n
		span.AddEvent("batch", trace.WithAttributes(attribute.Int("size", n)))

		if n < uc.cfg.SweepBatchSize {
			return total, nil
		}
	}
}
