package memory

import (
	"context"

	"casebem/internal/model"
)

type txCtxKey struct{}

// txState is the write set of one transaction.
type txState struct {
	demands map[string]model.Demand
	quotes  map[string]model.Quote
	held    map[string]struct{}
	order   []string
}

func newTxState() *txState {
	return &txState{
		demands: make(map[string]model.Demand),
		quotes:  make(map[string]model.Quote),
		held:    make(map[string]struct{}),
	}
}

func txFrom(ctx context.Context) (*txState, bool) {
	t, ok := ctx.Value(txCtxKey{}).(*txState)
	return t, ok
}

// WithinTx runs fn against a private write set and publishes it when fn
// succeeds and ctx is still alive.
func (r *implRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	t := newTxState()
	defer r.releaseAll(t)

	if err := fn(context.WithValue(ctx, txCtxKey{}, t)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	for id, d := range t.demands {
		r.demands[id] = d
	}
	for id, q := range t.quotes {
		r.quotes[id] = q
	}
	r.mu.Unlock()
	return nil
}

// lock takes key for the current transaction. Outside a transaction it is a
// no-op, reads then see committed state only.
func (r *implRepository) lock(ctx context.Context, key string) error {
	t, ok := txFrom(ctx)
	if !ok {
		return nil
	}
	if _, held := t.held[key]; held {
		return nil
	}
	if err := r.locks.acquire(ctx, key, r.lockTimeout); err != nil {
		r.l.Warnf(ctx, "repository/memory.lock %s: %v", key, err)
		return err
	}
	t.held[key] = struct{}{}
	t.order = append(t.order, key)
	return nil
}

func (r *implRepository) tryLock(ctx context.Context, key string) bool {
	t, ok := txFrom(ctx)
	if !ok {
		return true
	}
	if _, held := t.held[key]; held {
		return true
	}
	if !r.locks.tryAcquire(key) {
		return false
	}
	t.held[key] = struct{}{}
	t.order = append(t.order, key)
	return true
}

func (r *implRepository) releaseAll(t *txState) {
	for i := len(t.order) - 1; i >= 0; i-- {
		r.locks.release(t.order[i])
	}
}

// demand returns a private copy of the demand as seen by ctx.
func (r *implRepository) demand(ctx context.Context, id string) (model.Demand, bool) {
	if t, ok := txFrom(ctx); ok {
		if d, ok := t.demands[id]; ok {
			return cloneDemand(d), true
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.demands[id]
	if !ok {
		return model.Demand{}, false
	}
	return cloneDemand(d), true
}

func (r *implRepository) quote(ctx context.Context, id string) (model.Quote, bool) {
	if t, ok := txFrom(ctx); ok {
		if q, ok := t.quotes[id]; ok {
			return cloneQuote(q), true
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quotes[id]
	if !ok {
		return model.Quote{}, false
	}
	return cloneQuote(q), true
}

// stageDemand records d in the write set, or commits it at once outside a
// transaction.
func (r *implRepository) stageDemand(ctx context.Context, d model.Demand) {
	if t, ok := txFrom(ctx); ok {
		t.demands[d.ID] = cloneDemand(d)
		return
	}
	r.mu.Lock()
	r.demands[d.ID] = cloneDemand(d)
	r.mu.Unlock()
}

func (r *implRepository) stageQuote(ctx context.Context, q model.Quote) {
	if t, ok := txFrom(ctx); ok {
		t.quotes[q.ID] = cloneQuote(q)
		return
	}
	r.mu.Lock()
	r.quotes[q.ID] = cloneQuote(q)
	r.mu.Unlock()
}

// allDemands is the committed set overlaid with the write set of ctx.
func (r *implRepository) allDemands(ctx context.Context) []model.Demand {
	r.mu.RLock()
	merged := make(map[string]model.Demand, len(r.demands))
	for id, d := range r.demands {
		merged[id] = d
	}
	r.mu.RUnlock()

	if t, ok := txFrom(ctx); ok {
		for id, d := range t.demands {
			merged[id] = d
		}
	}

	out := make([]model.Demand, 0, len(merged))
	for _, d := range merged {
		out = append(out, cloneDemand(d))
	}
	return out
}

func (r *implRepository) allQuotes(ctx context.Context) []model.Quote {
	r.mu.RLock()
	merged := make(map[string]model.Quote, len(r.quotes))
	for id, q := range r.quotes {
		merged[id] = q
	}
	r.mu.RUnlock()

	if t, ok := txFrom(ctx); ok {
		for id, q := range t.quotes {
			merged[id] = q
		}
	}

	out := make([]model.Quote, 0, len(merged))
	for _, q := range merged {
		out = append(out, cloneQuote(q))
	}
	return out
}
