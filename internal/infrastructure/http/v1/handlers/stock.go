package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// StockHandler handles stock balance and movement requests.
type StockHandler struct {
	*BaseHandler
	ledger   *ledger.Service
	products *product.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, ledgerSvc *ledger.Service, products *product.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, ledger: ledgerSvc, products: products}
}

// GetBalances handles GET /stocks
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	outletID, ok := h.ResolveOutletScope(c, c.Query("outletId"))
	if !ok {
		return
	}

	filter := ledger.BalanceFilter{
		ExcludeZero: c.Query("excludeZero") == "true",
	}
	if pStr := c.Query("productId"); pStr != "" {
		parsed, err := id.Parse(pStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductIDs = []id.ID{parsed}
	}

	balances, err := h.ledger.Balances(ctx, outletID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockBalanceResponse, len(balances))
	for i, b := range balances {
		items[i] = dto.FromStockBalance(b)
	}
	h.OK(c, dto.StockBalanceListResponse{Items: items})
}

// Receive handles POST /stocks/receive
// Books a manual stock receipt outside the distributor order flow.
func (h *StockHandler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReceiveStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, req.OutletID)
	if !ok {
		return
	}

	var productID *id.ID
	if req.ProductID != nil {
		parsed, err := id.Parse(*req.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		productID = &parsed
	}

	key, _, err := h.products.ResolveStockKey(ctx, outletID, productID, req.LpgType)
	if err != nil {
		h.Error(c, err)
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	movement, err := h.ledger.Receive(ctx, ledger.ReceiveInput{
		Key:        key,
		Quantity:   types.Quantity(req.Quantity),
		Source:     ledger.SourceManualReceive,
		Note:       req.Note,
		OccurredAt: occurredAt,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.FromStockMovement(movement))
}

// GetMovements handles GET /stocks/movements
func (h *StockHandler) GetMovements(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListMovementsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}

	filter := ledger.MovementFilter{
		OutletID: &outletID,
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.ProductID != "" {
		parsed, err := id.Parse(query.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &parsed
	}
	if query.Kind != "" {
		kind := ledger.MovementKind(query.Kind)
		filter.Kind = &kind
	}

	movements, err := h.ledger.Movements(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockMovementResponse, len(movements))
	for i, m := range movements {
		items[i] = dto.FromStockMovement(m)
	}
	h.OK(c, dto.StockMovementListResponse{Items: items})
}

// RegisterRoutes registers stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetBalances)
	rg.POST("/receive", h.Receive)
	rg.GET("/movements", h.GetMovements)
}
