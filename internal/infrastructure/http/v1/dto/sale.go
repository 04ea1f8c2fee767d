package dto

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/domain/sales"
)

// --- Request DTOs ---

// CreateSaleRequest represents a point-of-sale transaction. Exactly one of
// customerId and customerName identifies the buyer.
type CreateSaleRequest struct {
	OutletID     string  `json:"outletId" binding:"omitempty,uuid"`
	ProductID    string  `json:"productId" binding:"required,uuid"`
	Quantity     int64   `json:"quantity" binding:"required,gt=0"`
	CustomerID   *string `json:"customerId,omitempty" binding:"omitempty,uuid"`
	CustomerName string  `json:"customerName,omitempty"`
	// UnitPrice overrides the catalog sell price when set. Decimal string.
	UnitPrice     *string    `json:"unitPrice,omitempty"`
	PaymentStatus string     `json:"paymentStatus,omitempty" binding:"omitempty,oneof=PAID UNPAID"`
	SaleDate      *time.Time `json:"saleDate,omitempty"`
	Note          string     `json:"note,omitempty"`
}

// UpdateSaleRequest edits the non-posting fields of a sale. Quantity and
// product are included so the API can refuse them explicitly rather than
// silently ignore the fields.
type UpdateSaleRequest struct {
	Quantity      *int64  `json:"quantity,omitempty"`
	ProductID     *string `json:"productId,omitempty" binding:"omitempty,uuid"`
	PaymentStatus *string `json:"paymentStatus,omitempty" binding:"omitempty,oneof=PAID UNPAID"`
	Note          *string `json:"note,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
}

// ReverseSaleRequest voids a posted sale.
type ReverseSaleRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ListSalesQuery filters the sale list.
type ListSalesQuery struct {
	OutletID        string     `form:"outletId" binding:"omitempty,uuid"`
	ProductID       string     `form:"productId" binding:"omitempty,uuid"`
	CustomerID      string     `form:"customerId" binding:"omitempty,uuid"`
	PaymentStatus   string     `form:"paymentStatus" binding:"omitempty,oneof=PAID UNPAID"`
	IncludeReversed bool       `form:"includeReversed"`
	FromDate        *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate          *time.Time `form:"toDate" time_format:"2006-01-02"`
	PageQuery
}

// --- Response DTOs ---

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	OutletID      string    `json:"outletId"`
	CustomerID    *string   `json:"customerId,omitempty"`
	CustomerName  string    `json:"customerName,omitempty"`
	ProductID     string    `json:"productId"`
	Quantity      int64     `json:"quantity"`
	UnitPrice     string    `json:"unitPrice"`
	Total         string    `json:"total"`
	PaymentStatus string    `json:"paymentStatus"`
	SaleDate      time.Time `json:"saleDate"`
	Note          string    `json:"note,omitempty"`
	Reversed      bool      `json:"reversed"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromSale converts domain entity to response DTO.
func FromSale(s *sales.Sale) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID.String(),
		Code:          s.Code,
		OutletID:      s.OutletID.String(),
		CustomerName:  s.CustomerName,
		ProductID:     s.ProductID.String(),
		Quantity:      s.Quantity.Int64(),
		UnitPrice:     s.UnitPrice.String(),
		Total:         s.Total.String(),
		PaymentStatus: string(s.PaymentStatus),
		SaleDate:      s.SaleDate,
		Note:          s.Note,
		Reversed:      s.Reversed,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.CustomerID != nil {
		val := s.CustomerID.String()
		resp.CustomerID = &val
	}
	return resp
}

// CreateSaleResponse reports the posted sale and whether the stock issue
// was clamped at zero.
type CreateSaleResponse struct {
	Sale          SaleResponse `json:"sale"`
	LedgerClamped bool         `json:"ledgerClamped"`
}

// SaleListResponse represents a list of sales.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}
