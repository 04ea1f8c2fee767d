// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"github.com/xinnxz/sim4lon-sub000/internal/domain/audit"
)

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Pagination ---

// PageQuery contains limit/offset query parameters.
type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// --- Audit ---

// AuditHistoryResponse lists change history of one document.
// Entries already carry json tags, so they are serialized as stored.
type AuditHistoryResponse struct {
	Items []audit.Entry `json:"items"`
}
