package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseID parses a path parameter as UUID.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(param))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+param+" format"))
		return id.Nil(), false
	}
	return parsed, true
}

// GetUserID extracts user ID from request context.
func (h *BaseHandler) GetUserID(c *gin.Context) string {
	return appctx.GetUserID(c.Request.Context())
}

// ResolveOutletScope returns the outlet the request acts on and verifies the
// caller may access it. Pangkalan callers fall back to their own outlet when
// none is requested; other callers must name one.
func (h *BaseHandler) ResolveOutletScope(c *gin.Context, raw string) (id.ID, bool) {
	ctx := c.Request.Context()

	if raw == "" {
		if own := appctx.GetOutletID(ctx); own != nil {
			return *own, true
		}
		h.Error(c, apperror.NewValidation("outletId is required"))
		return id.Nil(), false
	}

	outletID, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid outletId format"))
		return id.Nil(), false
	}
	if !appctx.CanAccessOutlet(ctx, outletID) {
		h.Error(c, apperror.NewForbidden("outlet belongs to another pangkalan"))
		return id.Nil(), false
	}
	return outletID, true
}

// CreatedData sends 201 response with a full body.
func (h *BaseHandler) CreatedData(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

