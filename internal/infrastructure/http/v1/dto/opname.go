package dto

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/domain/opname"
)

// --- Request DTOs ---

// PerformOpnameRequest books a physical stock count. The product may be
// addressed by id or by fixed LPG size name.
type PerformOpnameRequest struct {
	OutletID  string     `json:"outletId" binding:"omitempty,uuid"`
	ProductID *string    `json:"productId,omitempty" binding:"omitempty,uuid"`
	LpgType   string     `json:"lpgType,omitempty"`
	ActualQty *int64     `json:"actualQty" binding:"required,gte=0"`
	Note      string     `json:"note,omitempty"`
	CountedAt *time.Time `json:"countedAt,omitempty"`
}

// ListOpnamesQuery filters the opname list.
type ListOpnamesQuery struct {
	OutletID  string     `form:"outletId" binding:"omitempty,uuid"`
	ProductID string     `form:"productId" binding:"omitempty,uuid"`
	FromDate  *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"toDate" time_format:"2006-01-02"`
	PageQuery
}

// --- Response DTOs ---

// OpnameResponse represents a stock count document in API responses.
type OpnameResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	OutletID    string    `json:"outletId"`
	ProductID   string    `json:"productId"`
	RecordedQty int64     `json:"recordedQty"`
	ActualQty   int64     `json:"actualQty"`
	Difference  int64     `json:"difference"`
	Note        string    `json:"note,omitempty"`
	CountedBy   string    `json:"countedBy,omitempty"`
	CountedAt   time.Time `json:"countedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromOpname converts domain entity to response DTO.
func FromOpname(o *opname.Opname) OpnameResponse {
	return OpnameResponse{
		ID:          o.ID.String(),
		Code:        o.Code,
		OutletID:    o.OutletID.String(),
		ProductID:   o.ProductID.String(),
		RecordedQty: o.RecordedQty.Int64(),
		ActualQty:   o.ActualQty.Int64(),
		Difference:  o.Difference.Int64(),
		Note:        o.Note,
		CountedBy:   o.CountedBy,
		CountedAt:   o.CountedAt,
		CreatedAt:   o.CreatedAt,
	}
}

// OpnameListResponse represents a list of opname documents.
type OpnameListResponse struct {
	Items []OpnameResponse `json:"items"`
}
