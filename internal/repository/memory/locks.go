package memory

import (
	"context"
	"sync"
	"time"

	"casebem/internal/repository"
)

// lockTable hands out one exclusive slot per key.
type lockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{slots: make(map[string]chan struct{})}
}

func (t *lockTable) slot(key string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch, ok := t.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		t.slots[key] = ch
	}
	return ch
}

// acquire blocks until key is free, timeout elapses or ctx is done.
func (t *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case t.slot(key) <- struct{}{}:
		return nil
	case <-timer.C:
		return repository.ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tryAcquire takes key only if it is free.
func (t *lockTable) tryAcquire(key string) bool {
	select {
	case t.slot(key) <- struct{}{}:
		return true
	default:
		return false
	}
}

func (t *lockTable) release(key string) {
	select {
	case <-t.slot(key):
	default:
	}
}
