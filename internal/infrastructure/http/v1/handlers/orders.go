package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/orders"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles distributor order requests.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, service: service}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
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

	var orderDate time.Time
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	o, err := h.service.Create(c.Request.Context(), orders.CreateInput{
		OutletID:  outletID,
		ProductID: productID,
		Quantity:  types.Quantity(req.Quantity),
		OrderDate: orderDate,
		Note:      req.Note,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.FromOrder(o))
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !canAccessOrder(c, o) {
		h.Error(c, apperror.NewForbidden("order belongs to another pangkalan"))
		return
	}

	h.OK(c, dto.FromOrder(o))
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var query dto.ListOrdersQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}

	filter := orders.ListFilter{
		OutletID: &outletID,
		FromDate: query.FromDate,
		ToDate:   query.ToDate,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.Status != "" {
		status := orders.Status(query.Status)
		filter.Status = &status
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.OrderResponse, len(items))
	for i, o := range items {
		resp[i] = dto.FromOrder(o)
	}
	h.OK(c, dto.OrderListResponse{Items: resp})
}

// Confirm handles PATCH /orders/:id/confirm
// Confirmation is the distributor's acknowledgement, so the pangkalan
// that placed the order cannot confirm it itself.
func (h *OrderHandler) Confirm(c *gin.Context) {
	orderID, ok := h.requireOrderAccess(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if !appctx.HasRole(ctx, appctx.RoleAgen) && !appctx.HasRole(ctx, appctx.RoleAdmin) {
		h.Error(c, apperror.NewForbidden("only the distributor may confirm an order"))
		return
	}

	o, err := h.service.Confirm(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromOrder(o))
}

// Receive handles PATCH /orders/:id/receive
func (h *OrderHandler) Receive(c *gin.Context) {
	orderID, ok := h.requireOrderAccess(c)
	if !ok {
		return
	}

	var req dto.ReceiveOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := orders.ReceiveInput{
		OrderID: orderID,
		Note:    req.Note,
	}
	if req.ReceivedQty != nil {
		qty := types.Quantity(*req.ReceivedQty)
		in.ReceivedQty = &qty
	}
	if req.ReceivedDate != nil {
		in.ReceivedDate = *req.ReceivedDate
	}

	o, err := h.service.Receive(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromOrder(o))
}

// Cancel handles PATCH /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := h.requireOrderAccess(c)
	if !ok {
		return
	}

	var req dto.CancelOrderRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.Cancel(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromOrder(o))
}

// requireOrderAccess parses the order id and checks outlet scope before a
// status change.
func (h *OrderHandler) requireOrderAccess(c *gin.Context) (id.ID, bool) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return id.Nil(), false
	}
	o, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return id.Nil(), false
	}
	if !canAccessOrder(c, o) {
		h.Error(c, apperror.NewForbidden("order belongs to another pangkalan"))
		return id.Nil(), false
	}
	return orderID, true
}

// canAccessOrder extends outlet scoping for distributor users: an agen may
// act on orders addressed to it.
func canAccessOrder(c *gin.Context, o *orders.Order) bool {
	ctx := c.Request.Context()
	if appctx.CanAccessOutlet(ctx, o.OutletID) {
		return true
	}
	u := appctx.GetUser(ctx)
	return u != nil && u.Role == appctx.RoleAgen &&
		u.AgenID != nil && o.AgenID != nil && *u.AgenID == *o.AgenID
}

// RegisterRoutes registers order routes.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/confirm", h.Confirm)
	rg.PATCH("/:id/receive", h.Receive)
	rg.PATCH("/:id/cancel", h.Cancel)
}
