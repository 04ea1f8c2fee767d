package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/core/tx"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/audit"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

const auditEntity = "order"

// Service orchestrates the distributor order lifecycle. Receiving an order
// is the only path that moves stock, and it does so in the same transaction
// as the status change.
type Service struct {
	repo    Repository
	outlets outlet.Repository
	ledger  *ledger.Service
	num     numerator.Generator
	txm     tx.Manager
	trail   audit.Trail
}

// NewService creates a new order service.
func NewService(
	repo Repository,
	outlets outlet.Repository,
	ledgerSvc *ledger.Service,
	num numerator.Generator,
	txm tx.Manager,
	trail audit.Trail,
) *Service {
	if trail == nil {
		trail = audit.NopTrail{}
	}
	return &Service{
		repo:    repo,
		outlets: outlets,
		ledger:  ledgerSvc,
		num:     num,
		txm:     txm,
		trail:   trail,
	}
}

// CreateInput describes a new order request.
type CreateInput struct {
	OutletID  id.ID
	ProductID id.ID
	Quantity  types.Quantity
	OrderDate time.Time
	Note      string
}

// Create places a PENDING order against the outlet's distributor.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	o := NewOrder(in.OutletID, in.ProductID, in.Quantity, in.OrderDate)
	o.Note = in.Note
	if err := o.Validate(ctx); err != nil {
		return nil, err
	}

	out, err := s.outlets.GetByID(ctx, in.OutletID)
	if err != nil {
		return nil, err
	}
	if !out.Active {
		return nil, apperror.NewValidation("outlet is inactive").WithDetail("outlet_id", in.OutletID)
	}
	o.AgenID = out.AgenID

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		code, err := s.num.NextCode(ctx, numerator.DefaultConfig("ORD"), o.OrderDate)
		if err != nil {
			return fmt.Errorf("allocate order code: %w", err)
		}
		o.Code = code

		if err := s.repo.Create(ctx, o); err != nil {
			return err
		}
		return s.record(ctx, o.ID, audit.ActionCreate, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order created", "id", o.ID, "code", o.Code, "outlet_id", o.OutletID)
	return o, nil
}

// GetByID retrieves an order.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// List retrieves orders with filtering, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

// Confirm acknowledges a PENDING order.
func (s *Service) Confirm(ctx context.Context, orderID id.ID) (*Order, error) {
	var o *Order
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.repo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.MarkConfirmed(); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, o); err != nil {
			return err
		}
		return s.record(ctx, o.ID, audit.ActionStatus, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order confirmed", "id", o.ID, "code", o.Code)
	return o, nil
}

// ReceiveInput describes an order delivery.
type ReceiveInput struct {
	OrderID id.ID
	// ReceivedQty is the delivered quantity; nil means delivered as ordered.
	ReceivedQty  *types.Quantity
	ReceivedDate time.Time
	Note         string
}

// Receive books a delivery: the order moves CONFIRMED -> RECEIVED and the
// outlet's balance gains an IN movement, atomically. Partial and over
// deliveries are accepted with the actual quantity.
func (s *Service) Receive(ctx context.Context, in ReceiveInput) (*Order, error) {
	var o *Order
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.repo.GetByID(ctx, in.OrderID)
		if err != nil {
			return err
		}

		receivedQty := o.OrderedQty
		if in.ReceivedQty != nil {
			receivedQty = *in.ReceivedQty
		}
		if !receivedQty.IsPositive() {
			return apperror.NewValidation("received quantity must be positive").
				WithDetail("received_qty", receivedQty.Int64())
		}

		if err := o.MarkReceived(receivedQty, in.ReceivedDate); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, o); err != nil {
			return err
		}

		refID := o.ID
		_, err = s.ledger.Receive(ctx, ledger.ReceiveInput{
			Key:         ledger.StockKey{OutletID: o.OutletID, ProductID: o.ProductID},
			Quantity:    receivedQty,
			Source:      ledger.SourceDistributorDelivery,
			ReferenceID: &refID,
			Note:        in.Note,
			OccurredAt:  *o.ReceivedDate,
		})
		if err != nil {
			return err
		}
		return s.record(ctx, o.ID, audit.ActionStatus, o)
	})
	if err != nil {
		return nil, err
	}

	if o.ReceivedQty != o.OrderedQty {
		logger.Warn(ctx, "order received with quantity deviation",
			"id", o.ID,
			"code", o.Code,
			"ordered", o.OrderedQty.Int64(),
			"received", o.ReceivedQty.Int64(),
		)
	} else {
		logger.Info(ctx, "order received", "id", o.ID, "code", o.Code, "qty", o.ReceivedQty.Int64())
	}
	return o, nil
}

// Cancel aborts a PENDING or CONFIRMED order. No stock moves.
func (s *Service) Cancel(ctx context.Context, orderID id.ID, reason string) (*Order, error) {
	var o *Order
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.repo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.MarkCancelled(); err != nil {
			return err
		}
		if reason != "" {
			o.Note = reason
		}
		if err := s.repo.Update(ctx, o); err != nil {
			return err
		}
		return s.record(ctx, o.ID, audit.ActionStatus, o)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order cancelled", "id", o.ID, "code", o.Code)
	return o, nil
}

func (s *Service) record(ctx context.Context, orderID id.ID, action string, payload any) error {
	return s.trail.Record(ctx, audit.Entry{
		ID:         id.New(),
		Entity:     auditEntity,
		EntityID:   orderID,
		Action:     action,
		ActorID:    appctx.GetUserID(ctx),
		Payload:    payload,
		RecordedAt: time.Now().UTC(),
	})
}
