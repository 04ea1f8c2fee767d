package sales

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Repository defines storage operations for consumer sales.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)
	List(ctx context.Context, filter ListFilter) ([]*Sale, error)

	// Update persists the sale guarded by its version and increments it.
	Update(ctx context.Context, s *Sale) error
}

// ListFilter for filtering sale queries.
type ListFilter struct {
	OutletID        *id.ID
	ProductID       *id.ID
	CustomerID      *id.ID
	PaymentStatus   *PaymentStatus
	IncludeReversed bool
	FromDate        *time.Time
	ToDate          *time.Time
	Limit           int
	Offset          int
}
