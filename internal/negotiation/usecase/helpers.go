package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"casebem/internal/model"
	"casebem/internal/negotiation"
)

func (uc *implUseCase) startSpan(ctx context.Context, name string, sc model.Scope) (context.Context, trace.Span) {
	return uc.tracer.Start(ctx, "negotiation."+name, trace.WithAttributes(
		attribute.String("actor.id", sc.UserID),
		attribute.String("actor.role", string(sc.Role)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(model.KindOf(err)))
	}
	span.End()
}

func requireCouple(sc model.Scope) error {
	if !sc.IsCouple() || sc.UserID == "" {
		return negotiation.ErrCoupleOnly
	}
	return nil
}

func requireSupplier(sc model.Scope) error {
	if !sc.IsSupplier() || sc.UserID == "" {
		return negotiation.ErrSupplierOnly
	}
	return nil
}
