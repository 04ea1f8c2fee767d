package dto

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/domain/orders"
)

// --- Request DTOs ---

// CreateOrderRequest represents a request to place a distributor order.
type CreateOrderRequest struct {
	OutletID  string     `json:"outletId" binding:"omitempty,uuid"`
	ProductID string     `json:"productId" binding:"required,uuid"`
	Quantity  int64      `json:"quantity" binding:"required,gt=0"`
	OrderDate *time.Time `json:"orderDate,omitempty"`
	Note      string     `json:"note,omitempty"`
}

// ReceiveOrderRequest books a delivery against a confirmed order.
type ReceiveOrderRequest struct {
	// ReceivedQty overrides the ordered quantity when the delivery deviates.
	ReceivedQty  *int64     `json:"receivedQty,omitempty" binding:"omitempty,gt=0"`
	ReceivedDate *time.Time `json:"receivedDate,omitempty"`
	Note         string     `json:"note,omitempty"`
}

// CancelOrderRequest aborts an order.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ListOrdersQuery filters the order list.
type ListOrdersQuery struct {
	OutletID string     `form:"outletId" binding:"omitempty,uuid"`
	Status   string     `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED RECEIVED CANCELLED"`
	FromDate *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"toDate" time_format:"2006-01-02"`
	PageQuery
}

// --- Response DTOs ---

// OrderResponse represents a distributor order in API responses.
type OrderResponse struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	OutletID     string     `json:"outletId"`
	AgenID       *string    `json:"agenId,omitempty"`
	ProductID    string     `json:"productId"`
	OrderedQty   int64      `json:"orderedQty"`
	ReceivedQty  int64      `json:"receivedQty"`
	Status       string     `json:"status"`
	OrderDate    time.Time  `json:"orderDate"`
	ReceivedDate *time.Time `json:"receivedDate,omitempty"`
	Note         string     `json:"note,omitempty"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FromOrder converts domain entity to response DTO.
func FromOrder(o *orders.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID.String(),
		Code:         o.Code,
		OutletID:     o.OutletID.String(),
		ProductID:    o.ProductID.String(),
		OrderedQty:   o.OrderedQty.Int64(),
		ReceivedQty:  o.ReceivedQty.Int64(),
		Status:       string(o.Status),
		OrderDate:    o.OrderDate,
		ReceivedDate: o.ReceivedDate,
		Note:         o.Note,
		Version:      o.Version,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.AgenID != nil {
		val := o.AgenID.String()
		resp.AgenID = &val
	}
	return resp
}

// OrderListResponse represents a list of orders.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}
