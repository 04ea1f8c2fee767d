package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/audit"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// AuditHandler exposes document change history.
type AuditHandler struct {
	*BaseHandler
	trail audit.Trail
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, trail audit.Trail) *AuditHandler {
	return &AuditHandler{BaseHandler: base, trail: trail}
}

var auditedEntities = map[string]bool{
	"order":  true,
	"sale":   true,
	"opname": true,
}

// History handles GET /audit/:entity/:id
func (h *AuditHandler) History(c *gin.Context) {
	entity := c.Param("entity")
	if !auditedEntities[entity] {
		h.Error(c, apperror.NewValidation("unknown audited entity").
			WithDetail("entity", entity))
		return
	}
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.trail.ListByEntity(c.Request.Context(), entity, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AuditHistoryResponse{Items: entries})
}

// RegisterRoutes registers audit routes. Admin guarded in the router.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entity/:id", h.History)
}
