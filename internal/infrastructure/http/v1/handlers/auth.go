package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/auth"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLoginResult(result))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	userID, err := id.Parse(user.UserID)
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("invalid token subject"))
		return
	}

	u, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(u))
}

// Register handles POST /auth/users (admin only).
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var outletID, agenID *id.ID
	if req.OutletID != nil {
		parsed, err := id.Parse(*req.OutletID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid outletId format"))
			return
		}
		outletID = &parsed
	}
	if req.AgenID != nil {
		parsed, err := id.Parse(*req.AgenID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid agenId format"))
			return
		}
		agenID = &parsed
	}

	u, err := h.service.Register(c.Request.Context(),
		req.Username, req.Password, req.FullName, appctx.Role(req.Role), outletID, agenID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.FromUser(u))
}

// RegisterPublicRoutes registers routes that need no token.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// RegisterProtectedRoutes registers routes behind authentication.
// User management stays admin only; /me is open to any authenticated caller.
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("/me", h.Me)
	rg.POST("/users", admin, h.Register)
}
