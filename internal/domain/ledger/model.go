// Package ledger provides the stock ledger: an append-only movement log and
// the per-outlet balances materialized from it.
package ledger

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// StockKey identifies one balance row: (outlet, product).
// Fixed LPG size names are resolved to product ids at the API boundary, so
// the ledger itself is written against this single representation.
type StockKey struct {
	OutletID  id.ID `db:"outlet_id" json:"outletId"`
	ProductID id.ID `db:"product_id" json:"productId"`
}

// MovementKind defines the direction of a stock movement.
type MovementKind string

const (
	// KindIn increases the balance (distributor delivery, manual receive)
	KindIn MovementKind = "in"
	// KindOut decreases the balance (point-of-sale)
	KindOut MovementKind = "out"
	// KindAdjust resets the balance to a counted absolute value (opname)
	KindAdjust MovementKind = "adjust"
)

// Well-known movement source tags.
const (
	SourceDistributorDelivery = "distributor delivery"
	SourcePointOfSale         = "point-of-sale"
	SourceManualCount         = "manual count"
	SourceManualReceive       = "manual receive"
	SourceSaleReversal        = "sale reversal"
)

// Movement is one immutable ledger entry. Movements are append-only: they are
// never updated or deleted once posted.
//
// Quantity is the business magnitude (always positive). Delta is the signed
// change actually applied to the balance; the two differ on clamped
// point-of-sale issues, where the full sold quantity is recorded but the
// balance only drops to zero. Replaying Delta over all movements of a stock
// key reproduces the current balance exactly.
type Movement struct {
	ID           id.ID          `db:"id" json:"id"`
	OutletID     id.ID          `db:"outlet_id" json:"outletId"`
	ProductID    id.ID          `db:"product_id" json:"productId"`
	Kind         MovementKind   `db:"kind" json:"kind"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
	Delta        types.Quantity `db:"delta" json:"delta"`
	BalanceAfter types.Quantity `db:"balance_after" json:"balanceAfter"`
	Source       string         `db:"source" json:"source"`
	ReferenceID  *id.ID         `db:"reference_id" json:"referenceId,omitempty"`
	Note         string         `db:"note" json:"note,omitempty"`
	OccurredAt   time.Time      `db:"occurred_at" json:"occurredAt"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
}

// Key returns the stock key of the movement.
func (m *Movement) Key() StockKey {
	return StockKey{OutletID: m.OutletID, ProductID: m.ProductID}
}

// BalanceStatus classifies a balance against its thresholds.
type BalanceStatus string

const (
	StatusAman   BalanceStatus = "AMAN"
	StatusRendah BalanceStatus = "RENDAH"
	StatusKritis BalanceStatus = "KRITIS"
)

// StockBalance is the current quantity for one stock key, materialized from
// the movement log. Created lazily on first reference, never deleted, and
// mutated only by the ledger service.
type StockBalance struct {
	OutletID          id.ID          `db:"outlet_id" json:"outletId"`
	ProductID         id.ID          `db:"product_id" json:"productId"`
	Quantity          types.Quantity `db:"quantity" json:"quantity"`
	WarnThreshold     types.Quantity `db:"warn_threshold" json:"warnThreshold"`
	CriticalThreshold types.Quantity `db:"critical_threshold" json:"criticalThreshold"`
	LastMovementAt    time.Time      `db:"last_movement_at" json:"lastMovementAt"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updatedAt"`
}

// Key returns the stock key of the balance row.
func (b *StockBalance) Key() StockKey {
	return StockKey{OutletID: b.OutletID, ProductID: b.ProductID}
}

// Status classifies the balance: KRITIS at or below the critical threshold,
// RENDAH at or below the warning threshold, AMAN otherwise.
func (b *StockBalance) Status() BalanceStatus {
	if b.Quantity <= b.CriticalThreshold {
		return StatusKritis
	}
	if b.Quantity <= b.WarnThreshold {
		return StatusRendah
	}
	return StatusAman
}
