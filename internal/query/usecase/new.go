package usecase

import (
	"casebem/internal/demand"
	"casebem/internal/query"
	"casebem/internal/quote"
	"casebem/internal/repository"
	"casebem/pkg/log"
	"casebem/pkg/paginator"
)

// Config holds page sizes. PublicPageSize applies to open-demand discovery.
type Config struct {
	DefaultPageSize int
	PublicPageSize  int
	MaxPageSize     int
}

type implUseCase struct {
	demands  demand.UseCase
	quotes   quote.UseCase
	counters repository.CounterRepository
	l        log.Logger
	cfg      Config
}

func New(demands demand.UseCase, quotes quote.UseCase, counters repository.CounterRepository, l log.Logger, cfg Config) query.UseCase {
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = paginator.MaxLimit
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = paginator.DefaultLimit
	}
	if cfg.PublicPageSize <= 0 {
		cfg.PublicPageSize = 12
	}
	return &implUseCase{
		demands:  demands,
		quotes:   quotes,
		counters: counters,
		l:        l,
		cfg:      cfg,
	}
}
