package dto

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
)

// --- Request DTOs ---

// ReceiveStockRequest books a manual stock receipt outside the order flow.
// The product may be addressed by id or by fixed LPG size name.
type ReceiveStockRequest struct {
	OutletID   string     `json:"outletId" binding:"omitempty,uuid"`
	ProductID  *string    `json:"productId,omitempty" binding:"omitempty,uuid"`
	LpgType    string     `json:"lpgType,omitempty"`
	Quantity   int64      `json:"quantity" binding:"required,gt=0"`
	Note       string     `json:"note,omitempty"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
}

// ListMovementsQuery filters the movement log.
type ListMovementsQuery struct {
	OutletID  string     `form:"outletId" binding:"omitempty,uuid"`
	ProductID string     `form:"productId" binding:"omitempty,uuid"`
	Kind      string     `form:"kind" binding:"omitempty,oneof=in out adjust"`
	FromDate  *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"toDate" time_format:"2006-01-02"`
	PageQuery
}

// --- Response DTOs ---

// StockBalanceResponse represents a stock balance in API responses.
type StockBalanceResponse struct {
	OutletID          string     `json:"outletId"`
	ProductID         string     `json:"productId"`
	Quantity          int64      `json:"quantity"`
	WarnThreshold     int64      `json:"warnThreshold"`
	CriticalThreshold int64      `json:"criticalThreshold"`
	Status            string     `json:"status"`
	LastMovementAt    *time.Time `json:"lastMovementAt,omitempty"`
}

// FromStockBalance converts entity to response DTO.
func FromStockBalance(b ledger.StockBalance) StockBalanceResponse {
	var lastMovement *time.Time
	if !b.LastMovementAt.IsZero() && b.LastMovementAt.Unix() > 0 {
		val := b.LastMovementAt
		lastMovement = &val
	}
	return StockBalanceResponse{
		OutletID:          b.OutletID.String(),
		ProductID:         b.ProductID.String(),
		Quantity:          b.Quantity.Int64(),
		WarnThreshold:     b.WarnThreshold.Int64(),
		CriticalThreshold: b.CriticalThreshold.Int64(),
		Status:            string(b.Status()),
		LastMovementAt:    lastMovement,
	}
}

// StockMovementResponse represents a ledger entry in API responses.
type StockMovementResponse struct {
	ID           string    `json:"id"`
	OutletID     string    `json:"outletId"`
	ProductID    string    `json:"productId"`
	Kind         string    `json:"kind"`
	Quantity     int64     `json:"quantity"`
	Delta        int64     `json:"delta"`
	BalanceAfter int64     `json:"balanceAfter"`
	Source       string    `json:"source"`
	ReferenceID  *string   `json:"referenceId,omitempty"`
	Note         string    `json:"note,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromStockMovement converts entity to response DTO.
func FromStockMovement(m ledger.Movement) StockMovementResponse {
	resp := StockMovementResponse{
		ID:           m.ID.String(),
		OutletID:     m.OutletID.String(),
		ProductID:    m.ProductID.String(),
		Kind:         string(m.Kind),
		Quantity:     m.Quantity.Int64(),
		Delta:        m.Delta.Int64(),
		BalanceAfter: m.BalanceAfter.Int64(),
		Source:       m.Source,
		Note:         m.Note,
		OccurredAt:   m.OccurredAt,
		CreatedAt:    m.CreatedAt,
	}
	if m.ReferenceID != nil {
		val := m.ReferenceID.String()
		resp.ReferenceID = &val
	}
	return resp
}

// StockBalanceListResponse represents a list of stock balances.
type StockBalanceListResponse struct {
	Items []StockBalanceResponse `json:"items"`
}

// StockMovementListResponse represents a list of stock movements.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
}
