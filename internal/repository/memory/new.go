// Package memory is an in-process Repository. Writers lock aggregates by key
// and stage full copies that are published atomically on commit, so readers
// only ever see committed state.
package memory

import (
	"sync"
	"time"

	"casebem/internal/model"
	"casebem/internal/repository"
	"casebem/pkg/log"
)

const defaultLockTimeout = 5 * time.Second

type implRepository struct {
	l           log.Logger
	lockTimeout time.Duration
	locks       *lockTable

	mu      sync.RWMutex
	demands map[string]model.Demand
	quotes  map[string]model.Quote
}

// New creates an in-memory Repository. lockTimeout bounds how long a
// transaction waits for another one holding the same aggregate.
func New(l log.Logger, lockTimeout time.Duration) repository.Repository {
	if l == nil {
		panic("repository/memory: logger is required")
	}
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &implRepository{
		l:           l,
		lockTimeout: lockTimeout,
		locks:       newLockTable(),
		demands:     make(map[string]model.Demand),
		quotes:      make(map[string]model.Quote),
	}
}

func demandKey(id string) string { return "demand:" + id }
func quoteKey(id string) string  { return "quote:" + id }
