package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// OutletHandler handles outlet and distributor master data requests.
type OutletHandler struct {
	*BaseHandler
	service *outlet.Service
}

// NewOutletHandler creates a new outlet handler.
func NewOutletHandler(base *BaseHandler, service *outlet.Service) *OutletHandler {
	return &OutletHandler{BaseHandler: base, service: service}
}

// Create handles POST /outlets (admin only).
func (h *OutletHandler) Create(c *gin.Context) {
	var req dto.CreateOutletRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o := outlet.NewOutlet(req.Code, req.Name)
	o.Address = req.Address
	o.Phone = req.Phone
	if req.AgenID != nil {
		parsed, err := id.Parse(*req.AgenID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid agenId format"))
			return
		}
		o.AgenID = &parsed
	}

	if err := h.service.Create(c.Request.Context(), o); err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, dto.FromOutlet(o))
}

// Get handles GET /outlets/:id
func (h *OutletHandler) Get(c *gin.Context) {
	outletID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if !appctx.CanAccessOutlet(c.Request.Context(), outletID) {
		h.Error(c, apperror.NewForbidden("outlet belongs to another pangkalan"))
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), outletID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromOutlet(o))
}

// List handles GET /outlets (admin only).
func (h *OutletHandler) List(c *gin.Context) {
	var query dto.ListOutletsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := outlet.ListFilter{
		ActiveOnly: query.ActiveOnly,
		Search:     query.Search,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}
	if query.AgenID != "" {
		parsed, err := id.Parse(query.AgenID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid agenId format"))
			return
		}
		filter.AgenID = &parsed
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.OutletResponse, len(items))
	for i, o := range items {
		resp[i] = dto.FromOutlet(o)
	}
	h.OK(c, dto.OutletListResponse{Items: resp})
}

// CreateAgen handles POST /agens (admin only).
func (h *OutletHandler) CreateAgen(c *gin.Context) {
	var req dto.CreateAgenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a := outlet.NewAgen(req.Code, req.Name)
	if err := h.service.CreateAgen(c.Request.Context(), a); err != nil {
		h.Error(c, err)
		return
	}
	h.CreatedData(c, dto.FromAgen(a))
}

// ListAgens handles GET /agens
func (h *OutletHandler) ListAgens(c *gin.Context) {
	items, err := h.service.ListAgens(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := make([]dto.AgenResponse, len(items))
	for i, a := range items {
		resp[i] = dto.FromAgen(a)
	}
	h.OK(c, dto.AgenListResponse{Items: resp})
}

// RegisterRoutes registers outlet routes. Admin-only routes are guarded by
// the router.
func (h *OutletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", h.Get)
}

// RegisterAdminRoutes registers outlet management routes.
func (h *OutletHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
}

// RegisterAgenRoutes registers distributor routes.
func (h *OutletHandler) RegisterAgenRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("", h.ListAgens)
	rg.POST("", admin, h.CreateAgen)
}
