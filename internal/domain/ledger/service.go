package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/tx"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

// Service provides the ledger write path. Every balance mutation locks the
// balance row and appends exactly one movement inside a single transaction:
// no operation may update the balance without a movement, and vice versa.
type Service struct {
	repo Repository
	txm  tx.Manager
}

// NewService creates a new ledger service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

// ReceiveInput describes an incoming stock movement.
type ReceiveInput struct {
	Key         StockKey
	Quantity    types.Quantity
	Source      string
	ReferenceID *id.ID
	Note        string
	OccurredAt  time.Time
}

// IssueInput describes an outgoing stock movement.
type IssueInput struct {
	Key         StockKey
	Quantity    types.Quantity
	Source      string
	ReferenceID *id.ID
	Note        string
	OccurredAt  time.Time

	// AllowClamp floors the balance at zero instead of rejecting when the
	// issued quantity exceeds the available stock. The movement still
	// records the full issued magnitude; only the applied delta shrinks.
	// Used by the point-of-sale path.
	AllowClamp bool
}

// IssueResult reports the outcome of an Issue call.
type IssueResult struct {
	Movement Movement
	Balance  StockBalance
	// Clamped is true when AllowClamp was set and the balance was floored.
	Clamped bool
}

// AdjustInput describes a stock opname correction.
type AdjustInput struct {
	Key        StockKey
	ActualQty  types.Quantity
	Source     string
	ReferenceID *id.ID
	Note       string
	OccurredAt time.Time
}

// AdjustResult reports the balance before and after an adjustment.
type AdjustResult struct {
	OldQty     types.Quantity `json:"oldQty"`
	NewQty     types.Quantity `json:"newQty"`
	Difference types.Quantity `json:"difference"`
	// Movement is nil when the counted quantity matched the recorded one.
	Movement *Movement `json:"-"`
}

// GetOrCreate returns the balance for a stock key, creating a zero-quantity
// row on first reference. Idempotent; never overwrites an existing row.
func (s *Service) GetOrCreate(ctx context.Context, key StockKey) (StockBalance, error) {
	var balance StockBalance
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.repo.GetOrCreateBalanceForUpdate(ctx, key)
		return err
	})
	if err != nil {
		return StockBalance{}, fmt.Errorf("get or create balance: %w", err)
	}
	return balance, nil
}

// GetBalance returns the current balance without creating a row.
func (s *Service) GetBalance(ctx context.Context, key StockKey) (StockBalance, error) {
	return s.repo.GetBalance(ctx, key)
}

// Receive increases the balance and appends an IN movement.
func (s *Service) Receive(ctx context.Context, in ReceiveInput) (Movement, error) {
	if !in.Quantity.IsPositive() {
		return Movement{}, apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", in.Quantity.Int64())
	}
	if in.Source == "" {
		return Movement{}, apperror.NewValidation("movement source is required")
	}

	var movement Movement
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.repo.GetOrCreateBalanceForUpdate(ctx, in.Key)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		newQty := balance.Quantity + in.Quantity
		movement = s.newMovement(in.Key, KindIn, in.Quantity, in.Quantity, newQty, in.Source, in.ReferenceID, in.Note, in.OccurredAt)

		if err := s.repo.SetBalanceQuantity(ctx, in.Key, newQty, movement.OccurredAt); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		if err := s.repo.InsertMovement(ctx, movement); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return Movement{}, err
	}

	logger.Info(ctx, "stock received",
		"outlet_id", in.Key.OutletID,
		"product_id", in.Key.ProductID,
		"qty", in.Quantity.Int64(),
		"source", in.Source,
	)
	return movement, nil
}

// Issue decreases the balance and appends an OUT movement.
// Without AllowClamp the call fails with INSUFFICIENT_STOCK when the issued
// quantity exceeds the available balance.
func (s *Service) Issue(ctx context.Context, in IssueInput) (IssueResult, error) {
	if !in.Quantity.IsPositive() {
		return IssueResult{}, apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", in.Quantity.Int64())
	}
	if in.Source == "" {
		return IssueResult{}, apperror.NewValidation("movement source is required")
	}

	var result IssueResult
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.repo.GetOrCreateBalanceForUpdate(ctx, in.Key)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		applied := in.Quantity
		if applied > balance.Quantity {
			if !in.AllowClamp {
				return apperror.NewInsufficientStock(
					in.Key.ProductID.String(),
					in.Quantity.Int64(),
					balance.Quantity.Int64(),
				)
			}
			applied = balance.Quantity
			result.Clamped = true
		}

		newQty := balance.Quantity - applied
		movement := s.newMovement(in.Key, KindOut, in.Quantity, applied.Neg(), newQty, in.Source, in.ReferenceID, in.Note, in.OccurredAt)

		if err := s.repo.SetBalanceQuantity(ctx, in.Key, newQty, movement.OccurredAt); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		if err := s.repo.InsertMovement(ctx, movement); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}

		balance.Quantity = newQty
		result.Movement = movement
		result.Balance = balance
		return nil
	})
	if err != nil {
		return IssueResult{}, err
	}

	if result.Clamped {
		logger.Warn(ctx, "stock issue clamped to zero",
			"outlet_id", in.Key.OutletID,
			"product_id", in.Key.ProductID,
			"requested", in.Quantity.Int64(),
			"source", in.Source,
		)
	}
	return result, nil
}

// Adjust resets the balance to a counted absolute quantity and appends an
// ADJUST movement sized to the delta. A matching count records no movement.
func (s *Service) Adjust(ctx context.Context, in AdjustInput) (AdjustResult, error) {
	if in.ActualQty.IsNegative() {
		return AdjustResult{}, apperror.NewValidation("actual quantity cannot be negative").
			WithDetail("actual_qty", in.ActualQty.Int64())
	}
	source := in.Source
	if source == "" {
		source = SourceManualCount
	}

	var result AdjustResult
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.repo.GetOrCreateBalanceForUpdate(ctx, in.Key)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		diff := in.ActualQty - balance.Quantity
		result = AdjustResult{
			OldQty:     balance.Quantity,
			NewQty:     in.ActualQty,
			Difference: diff,
		}
		if diff.IsZero() {
			// Counted quantity matches the ledger; nothing to post.
			return nil
		}

		movement := s.newMovement(in.Key, KindAdjust, diff.Abs(), diff, in.ActualQty, source, in.ReferenceID, in.Note, in.OccurredAt)

		if err := s.repo.SetBalanceQuantity(ctx, in.Key, in.ActualQty, movement.OccurredAt); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		if err := s.repo.InsertMovement(ctx, movement); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		result.Movement = &movement
		return nil
	})
	if err != nil {
		return AdjustResult{}, err
	}

	logger.Info(ctx, "stock adjusted",
		"outlet_id", in.Key.OutletID,
		"product_id", in.Key.ProductID,
		"old_qty", result.OldQty.Int64(),
		"new_qty", result.NewQty.Int64(),
	)
	return result, nil
}

// Balances returns balance rows for an outlet.
func (s *Service) Balances(ctx context.Context, outletID id.ID, filter BalanceFilter) ([]StockBalance, error) {
	return s.repo.ListBalancesByOutlet(ctx, outletID, filter)
}

// Movements returns the movement log, newest first.
func (s *Service) Movements(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.repo.ListMovements(ctx, filter)
}

func (s *Service) newMovement(
	key StockKey,
	kind MovementKind,
	qty, delta, balanceAfter types.Quantity,
	source string,
	refID *id.ID,
	note string,
	occurredAt time.Time,
) Movement {
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return Movement{
		ID:           id.New(),
		OutletID:     key.OutletID,
		ProductID:    key.ProductID,
		Kind:         kind,
		Quantity:     qty,
		Delta:        delta,
		BalanceAfter: balanceAfter,
		Source:       source,
		ReferenceID:  refID,
		Note:         note,
		OccurredAt:   occurredAt,
		CreatedAt:    time.Now().UTC(),
	}
}
