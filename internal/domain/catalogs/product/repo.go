package product

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Repository defines storage operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetBySizeClass(ctx context.Context, size SizeClass) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
}

// ListFilter for filtering product queries.
type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}
