package customer

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Repository defines storage operations for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)
	ListByOutlet(ctx context.Context, outletID id.ID, filter ListFilter) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
}

// ListFilter for filtering customer queries.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
