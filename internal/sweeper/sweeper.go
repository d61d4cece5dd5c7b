// Package sweeper runs the quote expiry sweep on a fixed interval.
package sweeper

import (
	"context"
	"time"

	"casebem/pkg/log"
)

const defaultInterval = time.Minute

// ExpirySweeper is the operation the loop drives.
type ExpirySweeper interface {
	RunExpirySweep(ctx context.Context, now time.Time) (int, error)
}

// Observer is told the outcome of every sweep. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveSweep(expired int, err error)
}

type Sweeper struct {
	uc       ExpirySweeper
	l        log.Logger
	interval time.Duration
	now      func() time.Time
	observer Observer
}

func New(uc ExpirySweeper, interval time.Duration, l log.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		uc:       uc,
		l:        l,
		interval: interval,
		now:      time.Now,
	}
}

// WithObserver reports each sweep to o.
func (s *Sweeper) WithObserver(o Observer) *Sweeper {
	s.observer = o
	return s
}

// Start sweeps once immediately and then on every tick until ctx is done.
// A failed sweep is logged and retried on the next tick.
func (s *Sweeper) Start(ctx context.Context) {
	s.l.Infof(ctx, "sweeper.Start: every %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.l.Info(ctx, "sweeper.Start: stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.uc.RunExpirySweep(ctx, s.now().UTC())
	if err != nil && ctx.Err() != nil {
		return
	}
	if s.observer != nil {
		s.observer.ObserveSweep(n, err)
	}
	if err != nil {
		s.l.Errorf(ctx, "sweeper.sweep RunExpirySweep: %v", err)
		return
	}
	if n > 0 {
		s.l.Infof(ctx, "sweeper.sweep: expired %d quotes", n)
	}
}
