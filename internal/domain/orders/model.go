// Package orders implements distributor order documents and their lifecycle.
package orders

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// Status is the lifecycle state of a distributor order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusReceived  Status = "RECEIVED"
	StatusCancelled Status = "CANCELLED"
)

// validTransitions encodes the order state machine. RECEIVED and CANCELLED
// are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusReceived, StatusCancelled},
	StatusReceived:  {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the transition is allowed.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Order is a restock request an outlet places with its distributor.
// Stock moves only when the order is received, never earlier.
type Order struct {
	ID       id.ID  `db:"id" json:"id"`
	Code     string `db:"code" json:"code"`
	OutletID id.ID  `db:"outlet_id" json:"outletId"`
	// AgenID is denormalized from the outlet at creation time so the order
	// keeps pointing at the distributor it was actually placed with.
	AgenID       *id.ID         `db:"agen_id" json:"agenId,omitempty"`
	ProductID    id.ID          `db:"product_id" json:"productId"`
	OrderedQty   types.Quantity `db:"ordered_qty" json:"orderedQty"`
	ReceivedQty  types.Quantity `db:"received_qty" json:"receivedQty"`
	Status       Status         `db:"status" json:"status"`
	OrderDate    time.Time      `db:"order_date" json:"orderDate"`
	ReceivedDate *time.Time     `db:"received_date" json:"receivedDate,omitempty"`
	Note         string         `db:"note" json:"note,omitempty"`
	Version      int            `db:"version" json:"version"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// NewOrder creates a PENDING order.
func NewOrder(outletID, productID id.ID, qty types.Quantity, orderDate time.Time) *Order {
	now := time.Now().UTC()
	if orderDate.IsZero() {
		orderDate = now
	}
	return &Order{
		ID:         id.New(),
		OutletID:   outletID,
		ProductID:  productID,
		OrderedQty: qty,
		Status:     StatusPending,
		OrderDate:  orderDate,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks order invariants.
func (o *Order) Validate(ctx context.Context) error {
	if id.IsNil(o.OutletID) {
		return apperror.NewValidation("outletId is required").WithDetail("field", "outletId")
	}
	if id.IsNil(o.ProductID) {
		return apperror.NewValidation("productId is required").WithDetail("field", "productId")
	}
	if !o.OrderedQty.IsPositive() {
		return apperror.NewValidation("ordered quantity must be at least 1").
			WithDetail("ordered_qty", o.OrderedQty.Int64())
	}
	return nil
}

// transition moves the order to a new status, enforcing the state machine.
func (o *Order) transition(to Status) error {
	if !o.Status.CanTransitionTo(to) {
		return apperror.NewInvalidTransition(string(o.Status), string(to))
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkConfirmed moves PENDING -> CONFIRMED.
func (o *Order) MarkConfirmed() error {
	return o.transition(StatusConfirmed)
}

// MarkReceived moves CONFIRMED -> RECEIVED and records the delivered
// quantity. Receiving a PENDING order is rejected; it must be confirmed
// first so the distributor acknowledgement is never skipped.
func (o *Order) MarkReceived(receivedQty types.Quantity, receivedAt time.Time) error {
	if err := o.transition(StatusReceived); err != nil {
		return err
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	o.ReceivedQty = receivedQty
	o.ReceivedDate = &receivedAt
	return nil
}

// MarkCancelled moves PENDING or CONFIRMED -> CANCELLED.
func (o *Order) MarkCancelled() error {
	return o.transition(StatusCancelled)
}
