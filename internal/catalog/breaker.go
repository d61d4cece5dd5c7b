package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"casebem/internal/model"
	"casebem/pkg/log"
)

// BreakerConfig tunes the circuit breaker around catalog lookups.
type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

type breakerReader struct {
	next Reader
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker trips after MinRequests calls with at least FailureRatio
// failures and then fails fast with ErrUnavailable until Timeout elapses.
func NewBreaker(next Reader, cfg BreakerConfig, l log.Logger) Reader {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 3
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 5
	}
	if cfg.FailureRatio == 0 {
		cfg.FailureRatio = 0.6
	}

	settings := gobreaker.Settings{
		Name:        "Catalog",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
		// Abandoned callers say nothing about the catalog's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			l.Warnf(context.Background(), "Circuit breaker %s state changed from %s to %s", name, from, to)
		},
	}
	return &breakerReader{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerReader) GetItem(ctx context.Context, itemID string) (model.CatalogItem, error) {
	it, err := executeWithBreaker(b.cb, func() (model.CatalogItem, error) {
		return b.next.GetItem(ctx, itemID)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return model.CatalogItem{}, ErrUnavailable
	}
	return it, err
}

func executeWithBreaker[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return *new(T), err
	}
	return res.(T), nil
}
