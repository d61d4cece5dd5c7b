package usecase

import (
	"time"

	"casebem/internal/demand"
	"casebem/internal/repository"
	"casebem/pkg/log"
)

// implUseCase is the private implementation of demand.UseCase.
type implUseCase struct {
	repo   repository.Repository
	quotes demand.QuoteWithdrawer
	l      log.Logger
	now    func() time.Time
}

// New creates a new demand UseCase implementation.
func New(repo repository.Repository, quotes demand.QuoteWithdrawer, l log.Logger) demand.UseCase {
	return &implUseCase{
		repo:   repo,
		quotes: quotes,
		l:      l,
		now:    time.Now,
	}
}
