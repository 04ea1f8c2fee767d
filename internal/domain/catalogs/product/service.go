package product

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

// Service provides business operations for the product catalog.
type Service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	logger.Info(ctx, "product created", "id", p.ID, "size_class", p.SizeClass)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// GetBySizeClass retrieves the active product for a fixed LPG type name.
func (s *Service) GetBySizeClass(ctx context.Context, size SizeClass) (*Product, error) {
	return s.repo.GetBySizeClass(ctx, size)
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

// ResolveStockKey maps a request referring to a product either by id or by
// fixed LPG type name to the ledger key for an outlet. Exactly one of
// productID and lpgType must be set.
func (s *Service) ResolveStockKey(ctx context.Context, outletID id.ID, productID *id.ID, lpgType string) (ledger.StockKey, *Product, error) {
	var p *Product
	var err error
	switch {
	case productID != nil && !id.IsNil(*productID):
		p, err = s.repo.GetByID(ctx, *productID)
	case lpgType != "":
		var size SizeClass
		size, err = ParseSizeClass(lpgType)
		if err == nil {
			p, err = s.repo.GetBySizeClass(ctx, size)
		}
	default:
		return ledger.StockKey{}, nil, apperror.NewValidation("either productId or lpgType is required")
	}
	if err != nil {
		return ledger.StockKey{}, nil, err
	}
	return ledger.StockKey{OutletID: outletID, ProductID: p.ID}, p, nil
}
