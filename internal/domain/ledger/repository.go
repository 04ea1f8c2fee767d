package ledger

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// Repository defines storage operations for the stock ledger.
type Repository interface {
	// Balance operations

	// GetBalance returns the current balance for a stock key.
	// A zero-quantity value is returned when no row exists yet.
	GetBalance(ctx context.Context, key StockKey) (StockBalance, error)

	// GetOrCreateBalanceForUpdate ensures the balance row exists (zero
	// quantity when first referenced) and returns it under a row lock.
	// Must be called inside a transaction; the lock serializes concurrent
	// mutations of the same stock key.
	GetOrCreateBalanceForUpdate(ctx context.Context, key StockKey) (StockBalance, error)

	// SetBalanceQuantity writes the new quantity for a locked balance row.
	SetBalanceQuantity(ctx context.Context, key StockKey, qty types.Quantity, movedAt time.Time) error

	// ListBalancesByOutlet returns balance rows for an outlet.
	ListBalancesByOutlet(ctx context.Context, outletID id.ID, filter BalanceFilter) ([]StockBalance, error)

	// Movement operations

	// InsertMovement appends one movement row. Pure insert; the ledger
	// never updates or deletes posted movements.
	InsertMovement(ctx context.Context, m Movement) error

	// ListMovements returns movements newest first.
	ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, error)
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	ProductIDs  []id.ID
	ExcludeZero bool
}

// MovementFilter for filtering the movement log.
type MovementFilter struct {
	OutletID    *id.ID
	ProductID   *id.ID
	Kind        *MovementKind
	ReferenceID *id.ID
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}
