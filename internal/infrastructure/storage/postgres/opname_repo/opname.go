// Package opname_repo provides the PostgreSQL implementation of opname storage.
package opname_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/opname"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const opnamesTable = "opnames"

var opnameColumns = []string{
	"id", "code", "outlet_id", "product_id",
	"recorded_qty", "actual_qty", "difference",
	"note", "counted_by", "counted_at", "created_at",
}

// Compile-time check.
var _ opname.Repository = (*Repo)(nil)

// Repo implements opname.Repository.
type Repo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewRepo creates a new opname repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an opname document.
func (r *Repo) Create(ctx context.Context, o *opname.Opname) error {
	q := r.builder.
		Insert(opnamesTable).
		Columns(opnameColumns...).
		Values(o.ID, o.Code, o.OutletID, o.ProductID,
			o.RecordedQty, o.ActualQty, o.Difference,
			o.Note, o.CountedBy, o.CountedAt, o.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert opname: %w", err)
	}
	return nil
}

// GetByID retrieves an opname document.
func (r *Repo) GetByID(ctx context.Context, opnameID id.ID) (*opname.Opname, error) {
	q := r.builder.Select(opnameColumns...).From(opnamesTable).Where(squirrel.Eq{"id": opnameID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var o opname.Opname
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &o, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("opname", opnameID)
		}
		return nil, fmt.Errorf("get opname: %w", err)
	}
	return &o, nil
}

// List retrieves opname documents, newest first.
func (r *Repo) List(ctx context.Context, filter opname.ListFilter) ([]*opname.Opname, error) {
	q := r.builder.Select(opnameColumns...).From(opnamesTable).
		OrderBy("counted_at DESC", "created_at DESC")

	if filter.OutletID != nil {
		q = q.Where(squirrel.Eq{"outlet_id": *filter.OutletID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"counted_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.Lt{"counted_at": *filter.ToDate})
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

	var list []*opname.Opname
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list opnames: %w", err)
	}
	return list, nil
}
