// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/audit"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/auth"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/customer"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/opname"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/orders"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/reports"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/sales"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/handlers"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1/middleware"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

// RouterConfig holds router wiring.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuditTrail backs the admin change-history endpoint
	AuditTrail audit.Trail

	// Domain services
	AuthService     *auth.Service
	LedgerService   *ledger.Service
	OrderService    *orders.Service
	SaleService     *sales.Service
	OpnameService   *opname.Service
	ReportService   *reports.Service
	OutletService   *outlet.Service
	ProductService  *product.Service
	CustomerService *customer.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	adminOnly := middleware.RequireRole(appctx.RoleAdmin)

	// API v1
	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1.Group("/auth"))

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		authHandler.RegisterProtectedRoutes(protected.Group("/auth"), adminOnly)

		outletHandler := handlers.NewOutletHandler(base, cfg.OutletService)
		outletHandler.RegisterRoutes(protected.Group("/outlets"))
		outletHandler.RegisterAdminRoutes(protected.Group("/outlets", adminOnly))
		outletHandler.RegisterAgenRoutes(protected.Group("/agens"), adminOnly)

		handlers.NewProductHandler(base, cfg.ProductService).
			RegisterRoutes(protected.Group("/products"), adminOnly)
		handlers.NewCustomerHandler(base, cfg.CustomerService).
			RegisterRoutes(protected.Group("/customers"))

		stocks := protected.Group("/stocks")
		handlers.NewStockHandler(base, cfg.LedgerService, cfg.ProductService).
			RegisterRoutes(stocks)
		handlers.NewOrderHandler(base, cfg.OrderService).
			RegisterRoutes(protected.Group("/orders"))
		handlers.NewSaleHandler(base, cfg.SaleService).
			RegisterRoutes(protected.Group("/sales"))

		opnameHandler := handlers.NewOpnameHandler(base, cfg.OpnameService, cfg.ProductService)
		opnameHandler.RegisterRoutes(protected.Group("/opnames"))
		opnameHandler.RegisterStockRoutes(stocks)
		handlers.NewReportHandler(base, cfg.ReportService).
			RegisterRoutes(protected.Group("/reports"))
		handlers.NewAuditHandler(base, cfg.AuditTrail).
			RegisterRoutes(protected.Group("/audit", adminOnly))
	}

	return router
}
