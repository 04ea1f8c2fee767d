package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/sales"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles point-of-sale requests.
type SaleHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sales.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

// Create handles POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, req.OutletID)
	if !ok {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	in := sales.CreateInput{
		OutletID:      outletID,
		ProductID:     productID,
		Quantity:      types.Quantity(req.Quantity),
		CustomerName:  req.CustomerName,
		PaymentStatus: sales.PaymentStatus(req.PaymentStatus),
		Note:          req.Note,
	}
	if req.CustomerID != nil {
		parsed, err := id.Parse(*req.CustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId format"))
			return
		}
		in.CustomerID = &parsed
	}
	if req.UnitPrice != nil {
		price, err := types.NewMoneyFromString(*req.UnitPrice)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid unitPrice format"))
			return
		}
		in.UnitPrice = &price
	}
	if req.SaleDate != nil {
		in.SaleDate = *req.SaleDate
	}

	result, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.CreateSaleResponse{
		Sale:          dto.FromSale(result.Sale),
		LedgerClamped: result.LedgerClamped,
	})
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !appctx.CanAccessOutlet(c.Request.Context(), s.OutletID) {
		h.Error(c, apperror.NewForbidden("sale belongs to another pangkalan"))
		return
	}

	h.OK(c, dto.FromSale(s))
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	var query dto.ListSalesQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}

	filter := sales.ListFilter{
		OutletID:        &outletID,
		IncludeReversed: query.IncludeReversed,
		FromDate:        query.FromDate,
		ToDate:          query.ToDate,
		Limit:           query.Limit,
		Offset:          query.Offset,
	}
	if query.ProductID != "" {
		parsed, err := id.Parse(query.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &parsed
	}
	if query.CustomerID != "" {
		parsed, err := id.Parse(query.CustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId format"))
			return
		}
		filter.CustomerID = &parsed
	}
	if query.PaymentStatus != "" {
		status := sales.PaymentStatus(query.PaymentStatus)
		filter.PaymentStatus = &status
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.SaleResponse, len(items))
	for i, s := range items {
		resp[i] = dto.FromSale(s)
	}
	h.OK(c, dto.SaleListResponse{Items: resp})
}

// Update handles PUT /sales/:id
func (h *SaleHandler) Update(c *gin.Context) {
	saleID, ok := h.requireSaleAccess(c)
	if !ok {
		return
	}

	var req dto.UpdateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := sales.UpdateInput{
		SaleID:       saleID,
		Note:         req.Note,
		CustomerName: req.CustomerName,
	}
	if req.Quantity != nil {
		qty := types.Quantity(*req.Quantity)
		in.Quantity = &qty
	}
	if req.ProductID != nil {
		parsed, err := id.Parse(*req.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		in.ProductID = &parsed
	}
	if req.PaymentStatus != nil {
		status := sales.PaymentStatus(*req.PaymentStatus)
		in.PaymentStatus = &status
	}

	s, err := h.service.Update(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(s))
}

// Reverse handles DELETE /sales/:id
// A posted sale is never removed; it is voided with a compensating movement.
func (h *SaleHandler) Reverse(c *gin.Context) {
	saleID, ok := h.requireSaleAccess(c)
	if !ok {
		return
	}

	var req dto.ReverseSaleRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.Reverse(c.Request.Context(), saleID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(s))
}

func (h *SaleHandler) requireSaleAccess(c *gin.Context) (id.ID, bool) {
	saleID, ok := h.ParseID(c, "id")
	if !ok {
		return id.Nil(), false
	}
	s, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return id.Nil(), false
	}
	if !appctx.CanAccessOutlet(c.Request.Context(), s.OutletID) {
		h.Error(c, apperror.NewForbidden("sale belongs to another pangkalan"))
		return id.Nil(), false
	}
	return saleID, true
}

// RegisterRoutes registers sale routes.
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Reverse)
}
