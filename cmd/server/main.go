// Package main is the entry point for the sim4lon API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/domain/auth"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/customer"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/opname"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/orders"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/reports"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/sales"
	v1 "github.com/xinnxz/sim4lon-sub000/internal/infrastructure/http/v1"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/opname_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/order_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/report_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/sale_repo"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting sim4lon server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	ledgerRepo := ledger_repo.NewRepo(txManager)
	orderRepo := order_repo.NewRepo(txManager)
	saleRepo := sale_repo.NewRepo(txManager)
	opnameRepo := opname_repo.NewRepo(txManager)
	reportRepo := report_repo.NewRepo(txManager)
	outletRepo := catalog_repo.NewOutletRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit store", "error", err)
	}

	numeratorService := numerator.New(txManager)

	// --- JWT ---
	jwtSecret := getEnv("JWT_SECRET", "change-me-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Domain services ---
	ledgerService := ledger.NewService(ledgerRepo, txManager)
	orderService := orders.NewService(orderRepo, outletRepo, ledgerService, numeratorService, txManager, auditStore)
	saleService := sales.NewService(saleRepo, productRepo, customerRepo, ledgerService, numeratorService, txManager, auditStore)
	opnameService := opname.NewService(opnameRepo, ledgerService, numeratorService, txManager, auditStore)
	reportService := reports.NewService(reportRepo, txManager)
	outletService := outlet.NewService(outletRepo)
	productService := product.NewService(productRepo)
	customerService := customer.NewService(customerRepo)
	authService := auth.NewService(userRepo, jwtService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log.WithComponent("http"),
		JWTValidator:    jwtService,
		AuditTrail:      auditStore,
		AuthService:     authService,
		LedgerService:   ledgerService,
		OrderService:    orderService,
		SaleService:     saleService,
		OpnameService:   opnameService,
		ReportService:   reportService,
		OutletService:   outletService,
		ProductService:  productService,
		CustomerService: customerService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
