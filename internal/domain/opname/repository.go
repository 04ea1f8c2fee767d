package opname

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Repository defines storage operations for opname documents.
type Repository interface {
	Create(ctx context.Context, o *Opname) error
	GetByID(ctx context.Context, opnameID id.ID) (*Opname, error)
	List(ctx context.Context, filter ListFilter) ([]*Opname, error)
}

// ListFilter for filtering opname queries.
type ListFilter struct {
	OutletID  *id.ID
	ProductID *id.ID
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	Offset    int
}
