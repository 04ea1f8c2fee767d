package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/customer"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles outlet customer book requests.
type CustomerHandler struct {
	*BaseHandler
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	return &CustomerHandler{BaseHandler: base, service: service}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, req.OutletID)
	if !ok {
		return
	}

	cust := customer.NewCustomer(outletID, req.Name)
	cust.Phone = req.Phone
	cust.Address = req.Address

	if err := h.service.Create(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, dto.FromCustomer(cust))
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !appctx.CanAccessOutlet(c.Request.Context(), cust.OutletID) {
		h.Error(c, apperror.NewForbidden("customer belongs to another pangkalan"))
		return
	}
	h.OK(c, dto.FromCustomer(cust))
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	var query dto.ListCustomersQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}

	items, err := h.service.ListByOutlet(c.Request.Context(), outletID, customer.ListFilter{
		Search: query.Search,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.CustomerResponse, len(items))
	for i, cust := range items {
		resp[i] = dto.FromCustomer(cust)
	}
	h.OK(c, dto.CustomerListResponse{Items: resp})
}

// RegisterRoutes registers customer routes.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}
