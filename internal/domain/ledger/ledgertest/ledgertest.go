// Package ledgertest provides in-memory test doubles for the stock ledger.
package ledgertest

import (
	"context"
	"sync"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
)

// NopTxManager runs the function directly without a database transaction.
type NopTxManager struct{}

func (NopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (NopTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Repository is an in-memory ledger.Repository.
type Repository struct {
	mu        sync.Mutex
	balances  map[ledger.StockKey]ledger.StockBalance
	movements []ledger.Movement
}

var _ ledger.Repository = (*Repository)(nil)

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{balances: make(map[ledger.StockKey]ledger.StockBalance)}
}

func (r *Repository) GetBalance(_ context.Context, key ledger.StockKey) (ledger.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.balances[key]; ok {
		return b, nil
	}
	return ledger.StockBalance{OutletID: key.OutletID, ProductID: key.ProductID}, nil
}

func (r *Repository) GetOrCreateBalanceForUpdate(_ context.Context, key ledger.StockKey) (ledger.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.balances[key]; ok {
		return b, nil
	}
	b := ledger.StockBalance{OutletID: key.OutletID, ProductID: key.ProductID, UpdatedAt: time.Now().UTC()}
	r.balances[key] = b
	return b, nil
}

func (r *Repository) SetBalanceQuantity(_ context.Context, key ledger.StockKey, qty types.Quantity, movedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.balances[key]
	b.OutletID = key.OutletID
	b.ProductID = key.ProductID
	b.Quantity = qty
	b.LastMovementAt = movedAt
	b.UpdatedAt = time.Now().UTC()
	r.balances[key] = b
	return nil
}

func (r *Repository) ListBalancesByOutlet(_ context.Context, outletID id.ID, filter ledger.BalanceFilter) ([]ledger.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ledger.StockBalance
	for _, b := range r.balances {
		if b.OutletID != outletID {
			continue
		}
		if filter.ExcludeZero && b.Quantity.IsZero() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *Repository) InsertMovement(_ context.Context, m ledger.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, m)
	return nil
}

func (r *Repository) ListMovements(_ context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ledger.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if filter.OutletID != nil && m.OutletID != *filter.OutletID {
			continue
		}
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Kind != nil && m.Kind != *filter.Kind {
			continue
		}
		if filter.ReferenceID != nil && (m.ReferenceID == nil || *m.ReferenceID != *filter.ReferenceID) {
			continue
		}
		out = append(out, m)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// Movements returns all movements for a stock key in insertion order.
func (r *Repository) Movements(key ledger.StockKey) []ledger.Movement {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ledger.Movement
	for _, m := range r.movements {
		if m.Key() == key {
			out = append(out, m)
		}
	}
	return out
}

// Replay recomputes a balance from the movement log alone.
func (r *Repository) Replay(key ledger.StockKey) types.Quantity {
	var q types.Quantity
	for _, m := range r.Movements(key) {
		q += m.Delta
	}
	return q
}
