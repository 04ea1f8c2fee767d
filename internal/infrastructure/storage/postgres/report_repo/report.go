// Package report_repo provides the PostgreSQL aggregation queries behind reports.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/reports"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ reports.Repository = (*Repo)(nil)

// Repo implements reports.Repository. Reports aggregate in SQL; only the
// telescoping fold happens in Go.
type Repo struct {
	txm *postgres.TxManager
}

// NewRepo creates a new report repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

// OpeningBalance sums applied deltas strictly before the given instant.
func (r *Repo) OpeningBalance(ctx context.Context, key ledger.StockKey, before time.Time) (types.Quantity, error) {
	sql := `
		SELECT COALESCE(SUM(delta), 0)
		FROM stock_movements
		WHERE outlet_id = $1 AND product_id = $2 AND occurred_at < $3
	`

	var qty int64
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, key.OutletID, key.ProductID, before)
	if err := row.Scan(&qty); err != nil {
		return 0, fmt.Errorf("sum opening balance: %w", err)
	}
	return types.Quantity(qty), nil
}

// DailyMovementAggregates returns per-day movement totals within [from, to).
func (r *Repo) DailyMovementAggregates(ctx context.Context, key ledger.StockKey, from, to time.Time) ([]reports.DailyMovementAggregate, error) {
	sql := `
		SELECT date_trunc('day', occurred_at) AS date,
		       COALESCE(SUM(delta) FILTER (WHERE kind = 'in'), 0)     AS in_qty,
		       COALESCE(SUM(delta) FILTER (WHERE kind = 'out'), 0)    AS out_qty,
		       COALESCE(SUM(delta) FILTER (WHERE kind = 'adjust'), 0) AS adjust_qty
		FROM stock_movements
		WHERE outlet_id = $1 AND product_id = $2
		  AND occurred_at >= $3 AND occurred_at < $4
		GROUP BY 1
		ORDER BY 1
	`

	var aggregates []reports.DailyMovementAggregate
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &aggregates, sql, key.OutletID, key.ProductID, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily movements: %w", err)
	}
	return aggregates, nil
}

// MovementTotals returns period totals per movement kind for an outlet.
// In and Adjust sum applied deltas; Out sums the issued magnitude, so it
// reflects what was sold even across clamped issues.
func (r *Repo) MovementTotals(ctx context.Context, outletID id.ID, productID *id.ID, from, to time.Time) (reports.MovementSummary, error) {
	sql := `
		SELECT COALESCE(SUM(delta) FILTER (WHERE kind = 'in'), 0)       AS total_in,
		       COALESCE(SUM(quantity) FILTER (WHERE kind = 'out'), 0)   AS total_out,
		       COALESCE(SUM(delta) FILTER (WHERE kind = 'adjust'), 0)   AS total_adjust,
		       COUNT(*)                                                 AS movement_count
		FROM stock_movements
		WHERE outlet_id = $1
		  AND ($2::uuid IS NULL OR product_id = $2)
		  AND occurred_at >= $3 AND occurred_at < $4
	`

	var summary reports.MovementSummary
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &summary, sql, outletID, productID, from, to)
	if err != nil {
		return reports.MovementSummary{}, fmt.Errorf("aggregate movement totals: %w", err)
	}
	return summary, nil
}

// SalesAggregates returns per-product sales totals within [from, to),
// excluding reversed sales. Cost multiplies the per-sale cost snapshot.
func (r *Repo) SalesAggregates(ctx context.Context, outletID id.ID, from, to time.Time) ([]reports.SalesSummaryRow, error) {
	sql := `
		SELECT s.product_id,
		       p.name                                            AS product_name,
		       COALESCE(SUM(s.quantity), 0)                      AS quantity,
		       COALESCE(SUM(s.total), 0)                         AS revenue,
		       COALESCE(SUM(s.cost_price * s.quantity), 0)       AS cost,
		       COALESCE(SUM(s.total - s.cost_price * s.quantity), 0) AS margin
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.outlet_id = $1 AND s.reversed = false
		  AND s.sale_date >= $2 AND s.sale_date < $3
		GROUP BY s.product_id, p.name
		ORDER BY p.name
	`

	var rows []reports.SalesSummaryRow
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, outletID, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}
	return rows, nil
}
