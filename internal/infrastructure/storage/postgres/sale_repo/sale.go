// Package sale_repo provides the PostgreSQL implementation of sale storage.
package sale_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/sales"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const salesTable = "sales"

var saleColumns = []string{
	"id", "code", "outlet_id", "customer_id", "customer_name", "product_id",
	"quantity", "unit_price", "total", "cost_price", "payment_status",
	"sale_date", "note", "reversed", "version", "created_at", "updated_at",
}

// Compile-time check.
var _ sales.Repository = (*Repo)(nil)

// Repo implements sales.Repository.
type Repo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewRepo creates a new sale repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new sale.
func (r *Repo) Create(ctx context.Context, s *sales.Sale) error {
	q := r.builder.
		Insert(salesTable).
		Columns(saleColumns...).
		Values(s.ID, s.Code, s.OutletID, s.CustomerID, s.CustomerName, s.ProductID,
			s.Quantity, s.UnitPrice, s.Total, s.CostPrice, s.PaymentStatus,
			s.SaleDate, s.Note, s.Reversed, s.Version, s.CreatedAt, s.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID retrieves a sale.
func (r *Repo) GetByID(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	q := r.builder.Select(saleColumns...).From(salesTable).Where(squirrel.Eq{"id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var s sales.Sale
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("sale", saleID)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List retrieves sales with filtering, newest first.
func (r *Repo) List(ctx context.Context, filter sales.ListFilter) ([]*sales.Sale, error) {
	q := r.builder.Select(saleColumns...).From(salesTable).
		OrderBy("sale_date DESC", "created_at DESC")

	if filter.OutletID != nil {
		q = q.Where(squirrel.Eq{"outlet_id": *filter.OutletID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.PaymentStatus != nil {
		q = q.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}
	if !filter.IncludeReversed {
		q = q.Where(squirrel.Eq{"reversed": false})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"sale_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.Lt{"sale_date": *filter.ToDate})
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

	var list []*sales.Sale
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

// Update persists the sale guarded by its version and increments it.
func (r *Repo) Update(ctx context.Context, s *sales.Sale) error {
	q := r.builder.
		Update(salesTable).
		Set("customer_name", s.CustomerName).
		Set("payment_status", s.PaymentStatus).
		Set("note", s.Note).
		Set("reversed", s.Reversed).
		Set("version", s.Version+1).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": s.ID, "version": s.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentUpdate("sale", s.ID)
	}
	s.Version++
	return nil
}
