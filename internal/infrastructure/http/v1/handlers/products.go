package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles LPG product catalog requests.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// Create handles POST /products (admin only).
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	size, err := product.ParseSizeClass(req.SizeClass)
	if err != nil {
		h.Error(c, err)
		return
	}

	costPrice := types.ZeroMoney()
	if req.CostPrice != "" {
		costPrice, err = types.NewMoneyFromString(req.CostPrice)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid costPrice format"))
			return
		}
	}
	sellPrice, err := types.NewMoneyFromString(req.SellPrice)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid sellPrice format"))
		return
	}

	p := product.NewProduct(req.Code, req.Name, size, costPrice, sellPrice)
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, dto.FromProduct(p))
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var query dto.ListProductsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	items, err := h.service.List(c.Request.Context(), product.ListFilter{
		ActiveOnly: query.ActiveOnly,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.ProductResponse, len(items))
	for i, p := range items {
		resp[i] = dto.FromProduct(p)
	}
	h.OK(c, dto.ProductListResponse{Items: resp})
}

// RegisterRoutes registers product routes.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", admin, h.Create)
}
