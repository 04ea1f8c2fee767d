// Package customer provides the outlet customer book.
package customer

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Customer is a repeat buyer registered at a single outlet.
type Customer struct {
	ID        id.ID     `db:"id" json:"id"`
	OutletID  id.ID     `db:"outlet_id" json:"outletId"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCustomer creates a new customer for an outlet.
func NewCustomer(outletID id.ID, name string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:        id.New(),
		OutletID:  outletID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks customer invariants.
func (c *Customer) Validate(ctx context.Context) error {
	if id.IsNil(c.OutletID) {
		return apperror.NewValidation("outletId is required").WithDetail("field", "outletId")
	}
	if c.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}
