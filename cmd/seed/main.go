// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/auth"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	outletRepo := catalog_repo.NewOutletRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)
	ledgerService := ledger.NewService(ledger_repo.NewRepo(txManager), txManager)
	authService := auth.NewService(userRepo, auth.NewJWTService(auth.DefaultJWTConfig("seed")))

	// --- Distributor and outlet ---
	agen := outlet.NewAgen("AGN-001", "PT Agen Elpiji Sejahtera")
	if err := outletRepo.CreateAgen(ctx, agen); err != nil {
		log.Fatalw("failed to seed agen", "error", err)
	}

	pangkalan := outlet.NewOutlet("PKL-001", "Pangkalan Berkah Jaya")
	pangkalan.AgenID = &agen.ID
	pangkalan.Address = "Jl. Melati No. 12, Bandung"
	pangkalan.Phone = "+62-812-0000-0001"
	if err := outletRepo.Create(ctx, pangkalan); err != nil {
		log.Fatalw("failed to seed outlet", "error", err)
	}
	log.Infow("outlet seeded", "id", pangkalan.ID, "code", pangkalan.Code)

	// --- Products: one per cylinder class ---
	catalog := []struct {
		code, name string
		size       product.SizeClass
		sellPrice  string
	}{
		{"LPG-3", "LPG 3kg (subsidi)", product.Size3Kg, "18000"},
		{"LPG-55", "LPG 5.5kg Bright Gas", product.Size5Kg, "65000"},
		{"LPG-12", "LPG 12kg", product.Size12Kg, "139000"},
		{"LPG-50", "LPG 50kg", product.Size50Kg, "520000"},
	}
	products := make([]*product.Product, 0, len(catalog))
	for _, item := range catalog {
		p := product.NewProduct(item.code, item.name, item.size,
			product.DefaultCostPrice(item.size), types.MustMoney(item.sellPrice))
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatalw("failed to seed product", "code", item.code, "error", err)
		}
		products = append(products, p)
	}
	log.Infow("products seeded", "count", len(products))

	// --- Users ---
	adminPassword := getEnv("ADMIN_PASSWORD", "Admin123!")
	if _, err := authService.Register(ctx, "admin", adminPassword, "System Admin",
		appctx.RoleAdmin, nil, nil); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	operatorPassword := getEnv("OPERATOR_PASSWORD", "Operator123!")
	if _, err := authService.Register(ctx, "pangkalan1", operatorPassword, "Operator Berkah Jaya",
		appctx.RolePangkalan, &pangkalan.ID, nil); err != nil {
		log.Fatalw("failed to seed operator user", "error", err)
	}
	log.Info("users seeded")

	// --- Opening stock for the 3kg line ---
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if _, err := ledgerService.Receive(ctx, ledger.ReceiveInput{
			Key:      ledger.StockKey{OutletID: pangkalan.ID, ProductID: products[0].ID},
			Quantity: 50,
			Source:   ledger.SourceManualReceive,
			Note:     "opening stock",
		}); err != nil {
			log.Fatalw("failed to seed opening stock", "error", err)
		}
		log.Info("opening stock seeded")
	}

	log.Info("seeding completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
