package outlet

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

// Service provides business operations for outlet master data.
type Service struct {
	repo Repository
}

// NewService creates a new outlet service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new outlet.
func (s *Service) Create(ctx context.Context, o *Outlet) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return err
	}
	logger.Info(ctx, "outlet created", "id", o.ID, "code", o.Code)
	return nil
}

// GetByID retrieves an outlet.
func (s *Service) GetByID(ctx context.Context, outletID id.ID) (*Outlet, error) {
	return s.repo.GetByID(ctx, outletID)
}

// List retrieves outlets with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Outlet, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

// GetAgenByID retrieves a distributor.
func (s *Service) GetAgenByID(ctx context.Context, agenID id.ID) (*Agen, error) {
	return s.repo.GetAgenByID(ctx, agenID)
}

// CreateAgen registers a distributor.
func (s *Service) CreateAgen(ctx context.Context, a *Agen) error {
	if a.Code == "" || a.Name == "" {
		return apperror.NewValidation("code and name are required")
	}
	if err := s.repo.CreateAgen(ctx, a); err != nil {
		return err
	}
	logger.Info(ctx, "agen created", "id", a.ID, "code", a.Code)
	return nil
}

// ListAgens retrieves all distributors.
func (s *Service) ListAgens(ctx context.Context) ([]*Agen, error) {
	return s.repo.ListAgens(ctx)
}
