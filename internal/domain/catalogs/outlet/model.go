// Package outlet provides the pangkalan (retail outlet) master data.
package outlet

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Outlet represents a pangkalan: a retail point holding its own stock balance.
type Outlet struct {
	ID        id.ID     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	AgenID    *id.ID    `db:"agen_id" json:"agenId,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewOutlet creates a new active outlet.
func NewOutlet(code, name string) *Outlet {
	now := time.Now().UTC()
	return &Outlet{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks outlet invariants.
func (o *Outlet) Validate(ctx context.Context) error {
	if o.Code == "" {
		return apperror.NewValidation("code is required").WithDetail("field", "code")
	}
	if o.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}

// Agen represents a distributor an outlet orders from.
type Agen struct {
	ID        id.ID     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewAgen creates a new active distributor.
func NewAgen(code, name string) *Agen {
	return &Agen{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}
