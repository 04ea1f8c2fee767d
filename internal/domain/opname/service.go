package opname

import (
	"context"
	"fmt"
	"time"

	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/numerator"
	"github.com/xinnxz/sim4lon-sub000/internal/core/tx"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/audit"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

const auditEntity = "opname"

// Service books physical stock counts. The count document and the balance
// reset commit in one transaction.
type Service struct {
	repo   Repository
	ledger *ledger.Service
	num    numerator.Generator
	txm    tx.Manager
	trail  audit.Trail
}

// NewService creates a new opname service.
func NewService(repo Repository, ledgerSvc *ledger.Service, num numerator.Generator, txm tx.Manager, trail audit.Trail) *Service {
	if trail == nil {
		trail = audit.NopTrail{}
	}
	return &Service{repo: repo, ledger: ledgerSvc, num: num, txm: txm, trail: trail}
}

// PerformInput describes one physical count.
type PerformInput struct {
	OutletID  id.ID
	ProductID id.ID
	ActualQty types.Quantity
	Note      string
	CountedAt time.Time
}

// Perform books a count: the balance is reset to the counted quantity and
// the difference is posted as an ADJUST movement. A count that matches the
// recorded balance still produces a document, but no movement.
func (s *Service) Perform(ctx context.Context, in PerformInput) (*Opname, error) {
	countedAt := in.CountedAt
	if countedAt.IsZero() {
		countedAt = time.Now().UTC()
	}

	doc := &Opname{
		ID:        id.New(),
		OutletID:  in.OutletID,
		ProductID: in.ProductID,
		ActualQty: in.ActualQty,
		Note:      in.Note,
		CountedBy: appctx.GetUserID(ctx),
		CountedAt: countedAt,
		CreatedAt: time.Now().UTC(),
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		code, err := s.num.NextCode(ctx, numerator.DefaultConfig("OPN"), countedAt)
		if err != nil {
			return fmt.Errorf("allocate opname code: %w", err)
		}
		doc.Code = code

		refID := doc.ID
		adjusted, err := s.ledger.Adjust(ctx, ledger.AdjustInput{
			Key:         ledger.StockKey{OutletID: in.OutletID, ProductID: in.ProductID},
			ActualQty:   in.ActualQty,
			Source:      ledger.SourceManualCount,
			ReferenceID: &refID,
			Note:        code,
			OccurredAt:  countedAt,
		})
		if err != nil {
			return err
		}
		doc.RecordedQty = adjusted.OldQty
		doc.Difference = adjusted.Difference

		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}
		return s.trail.Record(ctx, audit.Entry{
			ID:         id.New(),
			Entity:     auditEntity,
			EntityID:   doc.ID,
			Action:     audit.ActionCreate,
			ActorID:    appctx.GetUserID(ctx),
			Payload:    doc,
			RecordedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "opname booked",
		"id", doc.ID,
		"code", doc.Code,
		"outlet_id", doc.OutletID,
		"recorded", doc.RecordedQty.Int64(),
		"actual", doc.ActualQty.Int64(),
		"difference", doc.Difference.Int64(),
	)
	return doc, nil
}

// GetByID retrieves an opname document.
func (s *Service) GetByID(ctx context.Context, opnameID id.ID) (*Opname, error) {
	return s.repo.GetByID(ctx, opnameID)
}

// List retrieves opname documents, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Opname, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}
