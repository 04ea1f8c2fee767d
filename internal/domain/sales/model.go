// Package sales implements consumer sale documents posted at the point of sale.
package sales

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// PaymentStatus of a sale.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "PAID"
	PaymentUnpaid PaymentStatus = "UNPAID"
)

// Sale is one consumer transaction at an outlet. Posting a sale issues stock
// with clamp semantics: the document always records what was sold, even when
// the recorded balance was lower.
type Sale struct {
	ID       id.ID  `db:"id" json:"id"`
	Code     string `db:"code" json:"code"`
	OutletID id.ID  `db:"outlet_id" json:"outletId"`
	// Exactly one of CustomerID and CustomerName is set: registered buyers
	// by reference, walk-ins by name.
	CustomerID   *id.ID         `db:"customer_id" json:"customerId,omitempty"`
	CustomerName string         `db:"customer_name" json:"customerName,omitempty"`
	ProductID    id.ID          `db:"product_id" json:"productId"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice    types.Money    `db:"unit_price" json:"unitPrice"`
	Total        types.Money    `db:"total" json:"total"`
	// CostPrice is snapshotted at sale time so margin reports survive later
	// catalog price changes.
	CostPrice     types.Money   `db:"cost_price" json:"costPrice"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`
	SaleDate      time.Time     `db:"sale_date" json:"saleDate"`
	Note          string        `db:"note" json:"note,omitempty"`
	Reversed      bool          `db:"reversed" json:"reversed"`
	Version       int           `db:"version" json:"version"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}

// Validate checks sale invariants.
func (s *Sale) Validate(ctx context.Context) error {
	if id.IsNil(s.OutletID) {
		return apperror.NewValidation("outletId is required").WithDetail("field", "outletId")
	}
	if id.IsNil(s.ProductID) {
		return apperror.NewValidation("productId is required").WithDetail("field", "productId")
	}
	if !s.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be at least 1").
			WithDetail("quantity", s.Quantity.Int64())
	}
	hasRef := s.CustomerID != nil && !id.IsNil(*s.CustomerID)
	hasName := s.CustomerName != ""
	if hasRef == hasName {
		return apperror.NewValidation("exactly one of customerId and customerName is required")
	}
	if s.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative")
	}
	switch s.PaymentStatus {
	case PaymentPaid, PaymentUnpaid:
	default:
		return apperror.NewValidation("invalid payment status").
			WithDetail("payment_status", string(s.PaymentStatus))
	}
	return nil
}
