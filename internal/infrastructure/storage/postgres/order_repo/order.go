// Package order_repo provides the PostgreSQL implementation of order storage.
package order_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/orders"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const ordersTable = "orders"

var orderColumns = []string{
	"id", "code", "outlet_id", "agen_id", "product_id",
	"ordered_qty", "received_qty", "status",
	"order_date", "received_date", "note", "version",
	"created_at", "updated_at",
}

// Compile-time check.
var _ orders.Repository = (*Repo)(nil)

// Repo implements orders.Repository.
type Repo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewRepo creates a new order repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new order.
func (r *Repo) Create(ctx context.Context, o *orders.Order) error {
	q := r.builder.
		Insert(ordersTable).
		Columns(orderColumns...).
		Values(o.ID, o.Code, o.OutletID, o.AgenID, o.ProductID,
			o.OrderedQty, o.ReceivedQty, o.Status,
			o.OrderDate, o.ReceivedDate, o.Note, o.Version,
			o.CreatedAt, o.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order.
func (r *Repo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"id": orderID}, orderID)
}

// GetByCode retrieves an order by its document code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*orders.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, code)
}

func (r *Repo) getOne(ctx context.Context, pred squirrel.Eq, ref any) (*orders.Order, error) {
	q := r.builder.Select(orderColumns...).From(ordersTable).Where(pred)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var o orders.Order
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &o, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("order", ref)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// List retrieves orders with filtering, newest first.
func (r *Repo) List(ctx context.Context, filter orders.ListFilter) ([]*orders.Order, error) {
	q := r.builder.Select(orderColumns...).From(ordersTable).
		OrderBy("order_date DESC", "created_at DESC")

	if filter.OutletID != nil {
		q = q.Where(squirrel.Eq{"outlet_id": *filter.OutletID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"order_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.Lt{"order_date": *filter.ToDate})
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

	var list []*orders.Order
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return list, nil
}

// Update persists the order guarded by its version and increments it.
func (r *Repo) Update(ctx context.Context, o *orders.Order) error {
	q := r.builder.
		Update(ordersTable).
		Set("status", o.Status).
		Set("received_qty", o.ReceivedQty).
		Set("received_date", o.ReceivedDate).
		Set("note", o.Note).
		Set("version", o.Version+1).
		Set("updated_at", o.UpdatedAt).
		Where(squirrel.Eq{"id": o.ID, "version": o.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentUpdate("order", o.ID)
	}
	o.Version++
	return nil
}
