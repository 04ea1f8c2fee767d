package reports

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
)

// Repository defines the aggregation queries behind the reports.
// All methods are read-only.
type Repository interface {
	// OpeningBalance sums applied deltas strictly before the given instant.
	OpeningBalance(ctx context.Context, key ledger.StockKey, before time.Time) (types.Quantity, error)

	// DailyMovementAggregates returns per-day movement totals for a stock
	// key within [from, to), ordered by date ascending.
	DailyMovementAggregates(ctx context.Context, key ledger.StockKey, from, to time.Time) ([]DailyMovementAggregate, error)

	// MovementTotals returns period totals per movement kind for an outlet,
	// optionally narrowed to one product.
	MovementTotals(ctx context.Context, outletID id.ID, productID *id.ID, from, to time.Time) (MovementSummary, error)

	// SalesAggregates returns per-product sales totals for an outlet within
	// [from, to), excluding reversed sales.
	SalesAggregates(ctx context.Context, outletID id.ID, from, to time.Time) ([]SalesSummaryRow, error)
}
