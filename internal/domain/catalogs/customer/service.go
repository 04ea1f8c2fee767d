package customer

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

// Service provides business operations for the customer book.
type Service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new customer.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	logger.Info(ctx, "customer created", "id", c.ID, "outlet_id", c.OutletID)
	return nil
}

// GetByID retrieves a customer.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// ListByOutlet retrieves an outlet's customers.
func (s *Service) ListByOutlet(ctx context.Context, outletID id.ID, filter ListFilter) ([]*Customer, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.repo.ListByOutlet(ctx, outletID, filter)
}
