package usecase

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"casebem/internal/demand"
	"casebem/internal/negotiation"
	"casebem/internal/quote"
	"casebem/internal/repository"
	"casebem/pkg/log"
)

const defaultSweepBatchSize = 100

// Config tunes the expiry sweep. A nil SweepLimiter runs batches back to back.
type Config struct {
	SweepBatchSize int
	SweepLimiter   *rate.Limiter
}

type implUseCase struct {
	uow     repository.UnitOfWork
	demands demand.UseCase
	quotes  quote.UseCase
	l       log.Logger
	tracer  trace.Tracer
	cfg     Config
}

// New creates the negotiation UseCase over the demand and quote stores.
func New(uow repository.UnitOfWork, demands demand.UseCase, quotes quote.UseCase, l log.Logger, cfg Config) negotiation.UseCase {
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}
	return &implUseCase{
		uow:     uow,
		demands: demands,
		quotes:  quotes,
		l:       l,
		tracer:  otel.Tracer("casebem/negotiation"),
		cfg:     cfg,
	}
}
