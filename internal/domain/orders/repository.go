package orders

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Repository defines storage operations for distributor orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)
	GetByCode(ctx context.Context, code string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)

	// Update persists the order guarded by its version and increments it.
	// Returns CONCURRENT_MODIFICATION when the stored version moved on.
	Update(ctx context.Context, o *Order) error
}

// ListFilter for filtering order queries.
type ListFilter struct {
	OutletID *id.ID
	Status   *Status
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}
