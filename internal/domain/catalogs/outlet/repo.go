package outlet

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Repository defines storage operations for outlets and their distributors.
type Repository interface {
	Create(ctx context.Context, o *Outlet) error
	GetByID(ctx context.Context, outletID id.ID) (*Outlet, error)
	GetByCode(ctx context.Context, code string) (*Outlet, error)
	List(ctx context.Context, filter ListFilter) ([]*Outlet, error)
	Update(ctx context.Context, o *Outlet) error

	CreateAgen(ctx context.Context, a *Agen) error
	GetAgenByID(ctx context.Context, agenID id.ID) (*Agen, error)
	ListAgens(ctx context.Context) ([]*Agen, error)
}

// ListFilter for filtering outlet queries.
type ListFilter struct {
	AgenID     *id.ID
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}
