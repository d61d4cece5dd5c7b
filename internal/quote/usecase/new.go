package usecase

import (
	"time"

	"casebem/internal/catalog"
	"casebem/internal/quote"
	"casebem/internal/repository"
	"casebem/pkg/log"
)

// implUseCase is the private implementation of quote.UseCase.
type implUseCase struct {
	repo    repository.Repository
	catalog catalog.Reader
	l       log.Logger
	now     func() time.Time
}

// New creates a new quote UseCase implementation.
func New(repo repository.Repository, cat catalog.Reader, l log.Logger) quote.UseCase {
	return &implUseCase{
		repo:    repo,
		catalog: cat,
		l:       l,
		now:     time.Now,
	}
}
