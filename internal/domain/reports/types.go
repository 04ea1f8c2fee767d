// Package reports provides read-only reporting over the stock ledger and sales.
package reports

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
)

// DailyMovementAggregate is one day's movement totals for a stock key,
// as signed applied deltas per movement kind.
type DailyMovementAggregate struct {
	Date   time.Time      `db:"date" json:"date"`
	In     types.Quantity `db:"in_qty" json:"in"`
	Out    types.Quantity `db:"out_qty" json:"out"`
	Adjust types.Quantity `db:"adjust_qty" json:"adjust"`
}

// StockCardRow is one day in a stock card: opening balance, the day's
// movements, and the closing balance.
type StockCardRow struct {
	Date    time.Time      `json:"date"`
	Opening types.Quantity `json:"opening"`
	In      types.Quantity `json:"in"`
	Out     types.Quantity `json:"out"`
	Adjust  types.Quantity `json:"adjust"`
	Closing types.Quantity `json:"closing"`
}

// StockCard is the daily movement history of one product at one outlet.
// Each row's opening equals the previous row's closing.
type StockCard struct {
	OutletID  id.ID          `json:"outletId"`
	ProductID id.ID          `json:"productId"`
	From      time.Time      `json:"from"`
	To        time.Time      `json:"to"`
	Opening   types.Quantity `json:"opening"`
	Rows      []StockCardRow `json:"rows"`
	Closing   types.Quantity `json:"closing"`
}

// MovementSummary holds period totals per movement kind. In and Adjust carry
// signed applied deltas; Out is the issued magnitude.
type MovementSummary struct {
	TotalIn     types.Quantity `db:"total_in" json:"totalIn"`
	TotalOut    types.Quantity `db:"total_out" json:"totalOut"`
	TotalAdjust types.Quantity `db:"total_adjust" json:"totalAdjust"`
	Count       int            `db:"movement_count" json:"count"`
}

// SalesSummaryRow aggregates sales of one product over a period. Cost uses
// the per-sale cost snapshot, so later catalog changes do not shift margins.
type SalesSummaryRow struct {
	ProductID   id.ID          `db:"product_id" json:"productId"`
	ProductName string         `db:"product_name" json:"productName"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	Revenue     types.Money    `db:"revenue" json:"revenue"`
	Cost        types.Money    `db:"cost" json:"cost"`
	Margin      types.Money    `db:"margin" json:"margin"`
}

// SalesSummary aggregates an outlet's sales over a period. Reversed sales
// are excluded.
type SalesSummary struct {
	OutletID     id.ID             `json:"outletId"`
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	Rows         []SalesSummaryRow `json:"rows"`
	TotalRevenue types.Money       `json:"totalRevenue"`
	TotalCost    types.Money       `json:"totalCost"`
	TotalMargin  types.Money       `json:"totalMargin"`
}
