package dto

import "time"

// Report endpoints serialize the domain report structs directly; only the
// query parameters need DTOs.

// StockCardQuery selects one stock key and a date range. Pangkalan callers
// may omit outletId; it defaults to their own outlet.
type StockCardQuery struct {
	OutletID  string    `form:"outletId" binding:"omitempty,uuid"`
	ProductID string    `form:"productId" binding:"required,uuid"`
	From      time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To        time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// MovementSummaryQuery selects an outlet, an optional product and a range.
type MovementSummaryQuery struct {
	OutletID  string    `form:"outletId" binding:"omitempty,uuid"`
	ProductID string    `form:"productId" binding:"omitempty,uuid"`
	From      time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To        time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// SalesSummaryQuery selects an outlet and a date range.
type SalesSummaryQuery struct {
	OutletID string    `form:"outletId" binding:"omitempty,uuid"`
	From     time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To       time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}
