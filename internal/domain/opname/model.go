// Package opname implements physical stock count documents.
package opname

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// Opname records one physical count of a product at an outlet. The counted
// quantity becomes the new balance; the difference is kept for audit.
type Opname struct {
	ID          id.ID          `db:"id" json:"id"`
	Code        string         `db:"code" json:"code"`
	OutletID    id.ID          `db:"outlet_id" json:"outletId"`
	ProductID   id.ID          `db:"product_id" json:"productId"`
	RecordedQty types.Quantity `db:"recorded_qty" json:"recordedQty"`
	ActualQty   types.Quantity `db:"actual_qty" json:"actualQty"`
	Difference  types.Quantity `db:"difference" json:"difference"`
	Note        string         `db:"note" json:"note,omitempty"`
	CountedBy   string         `db:"counted_by" json:"countedBy,omitempty"`
	CountedAt   time.Time      `db:"counted_at" json:"countedAt"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}
