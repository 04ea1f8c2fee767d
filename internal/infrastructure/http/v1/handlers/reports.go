package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/reports"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// ReportHandler handles reporting requests.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service) *ReportHandler {
	return &ReportHandler{BaseHandler: base, service: service}
}

// StockCard handles GET /reports/stock-card
func (h *ReportHandler) StockCard(c *gin.Context) {
	var query dto.StockCardQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}
	productID, err := id.Parse(query.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	card, err := h.service.StockCard(c.Request.Context(),
		ledger.StockKey{OutletID: outletID, ProductID: productID}, query.From, query.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, card)
}

// MovementSummary handles GET /reports/movement-summary
func (h *ReportHandler) MovementSummary(c *gin.Context) {
	var query dto.MovementSummaryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}

	var productID *id.ID
	if query.ProductID != "" {
		parsed, err := id.Parse(query.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		productID = &parsed
	}

	summary, err := h.service.MovementSummary(c.Request.Context(), outletID, productID, query.From, query.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// SalesSummary handles GET /reports/sales-summary
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var query dto.SalesSummaryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}

	summary, err := h.service.SalesSummary(c.Request.Context(), outletID, query.From, query.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// RegisterRoutes registers report routes.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock-card", h.StockCard)
	rg.GET("/movement-summary", h.MovementSummary)
	rg.GET("/sales-summary", h.SalesSummary)
}
