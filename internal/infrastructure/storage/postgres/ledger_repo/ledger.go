// Package ledger_repo provides the PostgreSQL implementation of the stock ledger.
package ledger_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/core/types"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/ledger"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const (
	movementsTable = "stock_movements"
	balancesTable  = "stock_balances"
)

// Default alert thresholds for newly created balance rows, in cylinders.
const (
	defaultWarnThreshold     = 10
	defaultCriticalThreshold = 3
)

// Compile-time check.
var _ ledger.Repository = (*Repo)(nil)

// Repo implements ledger.Repository.
type Repo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewRepo creates a new ledger repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetBalance returns the current balance, or a zero-quantity value when no
// row exists yet.
func (r *Repo) GetBalance(ctx context.Context, key ledger.StockKey) (ledger.StockBalance, error) {
	q := r.builder.
		Select("outlet_id", "product_id", "quantity", "warn_threshold", "critical_threshold", "last_movement_at", "updated_at").
		From(balancesTable).
		Where(squirrel.Eq{"outlet_id": key.OutletID, "product_id": key.ProductID})

	sql, args, err := q.ToSql()
	if err != nil {
		return ledger.StockBalance{}, fmt.Errorf("build select: %w", err)
	}

	var balance ledger.StockBalance
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &balance, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.StockBalance{
				OutletID:          key.OutletID,
				ProductID:         key.ProductID,
				WarnThreshold:     defaultWarnThreshold,
				CriticalThreshold: defaultCriticalThreshold,
			}, nil
		}
		return ledger.StockBalance{}, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// GetOrCreateBalanceForUpdate ensures the row exists and locks it.
// The insert is a no-op when the row is already there; the following
// SELECT ... FOR UPDATE serializes concurrent writers on the same key.
func (r *Repo) GetOrCreateBalanceForUpdate(ctx context.Context, key ledger.StockKey) (ledger.StockBalance, error) {
	querier := r.txm.GetQuerier(ctx)

	insertSQL := `
		INSERT INTO stock_balances (outlet_id, product_id, quantity, warn_threshold, critical_threshold, last_movement_at, updated_at)
		VALUES ($1, $2, 0, $3, $4, 'epoch', NOW())
		ON CONFLICT (outlet_id, product_id) DO NOTHING
	`
	if _, err := querier.Exec(ctx, insertSQL, key.OutletID, key.ProductID, defaultWarnThreshold, defaultCriticalThreshold); err != nil {
		return ledger.StockBalance{}, fmt.Errorf("ensure balance row: %w", err)
	}

	lockSQL := `
		SELECT outlet_id, product_id, quantity, warn_threshold, critical_threshold, last_movement_at, updated_at
		FROM stock_balances
		WHERE outlet_id = $1 AND product_id = $2
		FOR UPDATE
	`
	var balance ledger.StockBalance
	if err := pgxscan.Get(ctx, querier, &balance, lockSQL, key.OutletID, key.ProductID); err != nil {
		return ledger.StockBalance{}, fmt.Errorf("lock balance row: %w", err)
	}
	return balance, nil
}

// SetBalanceQuantity writes the new quantity for a locked balance row.
func (r *Repo) SetBalanceQuantity(ctx context.Context, key ledger.StockKey, qty types.Quantity, movedAt time.Time) error {
	q := r.builder.
		Update(balancesTable).
		Set("quantity", qty).
		Set("last_movement_at", movedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"outlet_id": key.OutletID, "product_id": key.ProductID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("balance row missing for outlet %s product %s", key.OutletID, key.ProductID)
	}
	return nil
}

// ListBalancesByOutlet returns balance rows for an outlet.
func (r *Repo) ListBalancesByOutlet(ctx context.Context, outletID id.ID, filter ledger.BalanceFilter) ([]ledger.StockBalance, error) {
	q := r.builder.
		Select("outlet_id", "product_id", "quantity", "warn_threshold", "critical_threshold", "last_movement_at", "updated_at").
		From(balancesTable).
		Where(squirrel.Eq{"outlet_id": outletID}).
		OrderBy("product_id")

	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": filter.ProductIDs})
	}
	if filter.ExcludeZero {
		q = q.Where(squirrel.Gt{"quantity": 0})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var balances []ledger.StockBalance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	return balances, nil
}

// InsertMovement appends one movement row.
func (r *Repo) InsertMovement(ctx context.Context, m ledger.Movement) error {
	q := r.builder.
		Insert(movementsTable).
		Columns("id", "outlet_id", "product_id", "kind", "quantity", "delta", "balance_after",
			"source", "reference_id", "note", "occurred_at", "created_at").
		Values(m.ID, m.OutletID, m.ProductID, m.Kind, m.Quantity, m.Delta, m.BalanceAfter,
			m.Source, m.ReferenceID, m.Note, m.OccurredAt, m.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListMovements returns movements newest first.
func (r *Repo) ListMovements(ctx context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	q := r.builder.
		Select("id", "outlet_id", "product_id", "kind", "quantity", "delta", "balance_after",
			"source", "reference_id", "note", "occurred_at", "created_at").
		From(movementsTable).
		OrderBy("occurred_at DESC", "created_at DESC")

	if filter.OutletID != nil {
		q = q.Where(squirrel.Eq{"outlet_id": *filter.OutletID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Kind != nil {
		q = q.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.ReferenceID != nil {
		q = q.Where(squirrel.Eq{"reference_id": *filter.ReferenceID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"occurred_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.Lt{"occurred_at": *filter.ToDate})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var movements []ledger.Movement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}
