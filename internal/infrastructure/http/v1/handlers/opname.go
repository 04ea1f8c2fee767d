package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/opname"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// OpnameHandler handles stock count requests.
type OpnameHandler struct {
	*BaseHandler
	service  *opname.Service
	products *product.Service
}

// NewOpnameHandler creates a new opname handler.
func NewOpnameHandler(base *BaseHandler, service *opname.Service, products *product.Service) *OpnameHandler {
	return &OpnameHandler{BaseHandler: base, service: service, products: products}
}

// Perform handles POST /stocks/opname
func (h *OpnameHandler) Perform(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PerformOpnameRequest
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

	var countedAt time.Time
	if req.CountedAt != nil {
		countedAt = *req.CountedAt
	}

	doc, err := h.service.Perform(ctx, opname.PerformInput{
		OutletID:  key.OutletID,
		ProductID: key.ProductID,
		ActualQty: types.Quantity(*req.ActualQty),
		Note:      req.Note,
		CountedAt: countedAt,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.FromOpname(doc))
}

// Get handles GET /opnames/:id
func (h *OpnameHandler) Get(c *gin.Context) {
	opnameID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), opnameID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !appctx.CanAccessOutlet(c.Request.Context(), doc.OutletID) {
		h.Error(c, apperror.NewForbidden("opname belongs to another pangkalan"))
		return
	}

	h.OK(c, dto.FromOpname(doc))
}

// List handles GET /opnames
func (h *OpnameHandler) List(c *gin.Context) {
	var query dto.ListOpnamesQuery
	if !h.BindQuery(c, &query) {
		return
	}

	outletID, ok := h.ResolveOutletScope(c, query.OutletID)
	if !ok {
		return
	}

	filter := opname.ListFilter{
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

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.OpnameResponse, len(items))
	for i, doc := range items {
		resp[i] = dto.FromOpname(doc)
	}
	h.OK(c, dto.OpnameListResponse{Items: resp})
}

// RegisterRoutes registers opname history routes.
func (h *OpnameHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

// RegisterStockRoutes registers the count posting route under the stocks group.
func (h *OpnameHandler) RegisterStockRoutes(rg *gin.RouterGroup) {
	rg.POST("/opname", h.Perform)
}
