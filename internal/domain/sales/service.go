package sales

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/core/tx"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/audit"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/customer"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

const auditEntity = "sale"

// Service posts consumer sales. The sale row and its OUT movement commit in
// one transaction; a sale with no matching stock still posts, with the
// balance clamped at zero.
type Service struct {
	repo      Repository
	products  product.Repository
	customers customer.Repository
	ledger    *ledger.Service
	num       numerator.Generator
	txm       tx.Manager
	trail     audit.Trail
}

// NewService creates a new sales service.
func NewService(
	repo Repository,
	products product.Repository,
	customers customer.Repository,
	ledgerSvc *ledger.Service,
	num numerator.Generator,
	txm tx.Manager,
	trail audit.Trail,
) *Service {
	if trail == nil {
		trail = audit.NopTrail{}
	}
	return &Service{
		repo:      repo,
		products:  products,
		customers: customers,
		ledger:    ledgerSvc,
		num:       num,
		txm:       txm,
		trail:     trail,
	}
}

// CreateInput describes a new sale.
type CreateInput struct {
	OutletID     id.ID
	ProductID    id.ID
	Quantity     types.Quantity
	CustomerID   *id.ID
	CustomerName string
	// UnitPrice overrides the catalog sell price when non-nil.
	UnitPrice     *types.Money
	PaymentStatus PaymentStatus
	SaleDate      time.Time
	Note          string
}

// CreateResult reports the posted sale and whether the stock issue clamped.
type CreateResult struct {
	Sale *Sale
	// LedgerClamped is true when the recorded balance was lower than the
	// sold quantity and the balance was floored at zero.
	LedgerClamped bool
}

// Create posts a sale and issues stock in a single transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return CreateResult{}, err
	}

	unitPrice := p.SellPrice
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = PaymentPaid
	}
	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now().UTC()
	}

	sale := &Sale{
		ID:            id.New(),
		OutletID:      in.OutletID,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		UnitPrice:     unitPrice,
		Total:         in.Quantity.Mul(unitPrice),
		CostPrice:     p.EffectiveCostPrice(),
		PaymentStatus: paymentStatus,
		SaleDate:      saleDate,
		Note:          in.Note,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := sale.Validate(ctx); err != nil {
		return CreateResult{}, err
	}
	if sale.CustomerID != nil && !id.IsNil(*sale.CustomerID) {
		c, err := s.customers.GetByID(ctx, *sale.CustomerID)
		if err != nil {
			return CreateResult{}, err
		}
		if c.OutletID != in.OutletID {
			return CreateResult{}, apperror.NewValidation("customer belongs to another outlet").
				WithDetail("customer_id", *sale.CustomerID)
		}
	}

	var result CreateResult
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		code, err := s.num.NextCode(ctx, numerator.DefaultConfig("TRX"), sale.SaleDate)
		if err != nil {
			return fmt.Errorf("allocate sale code: %w", err)
		}
		sale.Code = code

		if err := s.repo.Create(ctx, sale); err != nil {
			return err
		}

		refID := sale.ID
		issued, err := s.ledger.Issue(ctx, ledger.IssueInput{
			Key:         ledger.StockKey{OutletID: sale.OutletID, ProductID: sale.ProductID},
			Quantity:    sale.Quantity,
			Source:      ledger.SourcePointOfSale,
			ReferenceID: &refID,
			Note:        sale.Code,
			OccurredAt:  sale.SaleDate,
			AllowClamp:  true,
		})
		if err != nil {
			return err
		}
		result.LedgerClamped = issued.Clamped
		return s.record(ctx, sale.ID, audit.ActionCreate, sale)
	})
	if err != nil {
		return CreateResult{}, err
	}
	result.Sale = sale

	logger.Info(ctx, "sale posted",
		"id", sale.ID,
		"code", sale.Code,
		"outlet_id", sale.OutletID,
		"qty", sale.Quantity.Int64(),
		"total", sale.Total.String(),
	)
	return result, nil
}

// GetByID retrieves a sale.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetByID(ctx, saleID)
}

// List retrieves sales with filtering, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

// UpdateInput describes edits on a posted sale. Quantity and product
// changes are rejected; the stock movement already happened.
type UpdateInput struct {
	SaleID        id.ID
	Quantity      *types.Quantity
	ProductID     *id.ID
	PaymentStatus *PaymentStatus
	Note          *string
	CustomerName  *string
}

// Update edits the non-posting fields of a sale. A quantity or product
// change is refused; the caller must reverse the sale and post a new one.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*Sale, error) {
	var sale *Sale
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.repo.GetByID(ctx, in.SaleID)
		if err != nil {
			return err
		}
		if sale.Reversed {
			return apperror.NewConflict("sale has been reversed").WithDetail("sale_id", sale.ID)
		}
		if (in.Quantity != nil && *in.Quantity != sale.Quantity) ||
			(in.ProductID != nil && *in.ProductID != sale.ProductID) {
			return &apperror.AppError{
				Code:       apperror.CodeSaleAlreadyPosted,
				Message:    "quantity and product cannot change on a posted sale; reverse it and post a new one",
				HTTPStatus: http.StatusConflict,
				Details:    map[string]any{"sale_id": sale.ID},
			}
		}
		if in.PaymentStatus != nil {
			switch *in.PaymentStatus {
			case PaymentPaid, PaymentUnpaid:
				sale.PaymentStatus = *in.PaymentStatus
			default:
				return apperror.NewValidation("invalid payment status").
					WithDetail("payment_status", string(*in.PaymentStatus))
			}
		}
		if in.Note != nil {
			sale.Note = *in.Note
		}
		if in.CustomerName != nil && sale.CustomerID == nil {
			sale.CustomerName = *in.CustomerName
		}
		sale.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, sale); err != nil {
			return err
		}
		return s.record(ctx, sale.ID, audit.ActionUpdate, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Reverse voids a sale and posts a compensating IN movement sized to the
// quantity the original sale actually deducted. A sale whose issue clamped
// to a smaller delta is restored by that smaller amount only.
func (s *Service) Reverse(ctx context.Context, saleID id.ID, reason string) (*Sale, error) {
	var sale *Sale
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.repo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.Reversed {
			return apperror.NewConflict("sale is already reversed").WithDetail("sale_id", sale.ID)
		}

		applied, err := s.appliedQuantity(ctx, sale)
		if err != nil {
			return err
		}

		sale.Reversed = true
		if reason != "" {
			sale.Note = reason
		}
		sale.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, sale); err != nil {
			return err
		}

		if applied.IsPositive() {
			refID := sale.ID
			_, err = s.ledger.Receive(ctx, ledger.ReceiveInput{
				Key:         ledger.StockKey{OutletID: sale.OutletID, ProductID: sale.ProductID},
				Quantity:    applied,
				Source:      ledger.SourceSaleReversal,
				ReferenceID: &refID,
				Note:        sale.Code,
			})
			if err != nil {
				return err
			}
		}
		return s.record(ctx, sale.ID, audit.ActionDelete, sale)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale reversed", "id", sale.ID, "code", sale.Code)
	return sale, nil
}

// appliedQuantity reads back the OUT movement posted for the sale and
// returns the magnitude of its applied delta.
func (s *Service) appliedQuantity(ctx context.Context, sale *Sale) (types.Quantity, error) {
	kind := ledger.KindOut
	refID := sale.ID
	movements, err := s.ledger.Movements(ctx, ledger.MovementFilter{
		ReferenceID: &refID,
		Kind:        &kind,
		Limit:       1,
	})
	if err != nil {
		return 0, fmt.Errorf("load sale movement: %w", err)
	}
	if len(movements) == 0 {
		return 0, apperror.NewInternal(fmt.Errorf("sale %s has no stock movement", sale.ID))
	}
	return movements[0].Delta.Abs(), nil
}

func (s *Service) record(ctx context.Context, saleID id.ID, action string, payload any) error {
	return s.trail.Record(ctx, audit.Entry{
		ID:         id.New(),
		Entity:     auditEntity,
		EntityID:   saleID,
		Action:     action,
		ActorID:    appctx.GetUserID(ctx),
		Payload:    payload,
		RecordedAt: time.Now().UTC(),
	})
}
