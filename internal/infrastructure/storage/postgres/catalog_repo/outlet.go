// Package catalog_repo provides PostgreSQL implementations for master data.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/outlet"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const (
	outletsTable = "outlets"
	agensTable   = "agens"
)

var outletColumns = []string{
	"id", "code", "name", "agen_id", "address", "phone", "active", "created_at", "updated_at",
}

// Compile-time check.
var _ outlet.Repository = (*OutletRepo)(nil)

// OutletRepo implements outlet.Repository.
type OutletRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewOutletRepo creates a new outlet repository.
func NewOutletRepo(txm *postgres.TxManager) *OutletRepo {
	return &OutletRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new outlet.
func (r *OutletRepo) Create(ctx context.Context, o *outlet.Outlet) error {
	q := r.builder.
		Insert(outletsTable).
		Columns(outletColumns...).
		Values(o.ID, o.Code, o.Name, o.AgenID, o.Address, o.Phone, o.Active, o.CreatedAt, o.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert outlet: %w", err)
	}
	return nil
}

// GetByID retrieves an outlet.
func (r *OutletRepo) GetByID(ctx context.Context, outletID id.ID) (*outlet.Outlet, error) {
	return r.getOne(ctx, squirrel.Eq{"id": outletID}, outletID)
}

// GetByCode retrieves an outlet by code.
func (r *OutletRepo) GetByCode(ctx context.Context, code string) (*outlet.Outlet, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, code)
}

func (r *OutletRepo) getOne(ctx context.Context, pred squirrel.Eq, ref any) (*outlet.Outlet, error) {
	q := r.builder.Select(outletColumns...).From(outletsTable).Where(pred)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var o outlet.Outlet
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &o, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("outlet", ref)
		}
		return nil, fmt.Errorf("get outlet: %w", err)
	}
	return &o, nil
}

// List retrieves outlets with filtering.
func (r *OutletRepo) List(ctx context.Context, filter outlet.ListFilter) ([]*outlet.Outlet, error) {
	q := r.builder.Select(outletColumns...).From(outletsTable).OrderBy("code")

	if filter.AgenID != nil {
		q = q.Where(squirrel.Eq{"agen_id": *filter.AgenID})
	}
	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
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

	var list []*outlet.Outlet
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list outlets: %w", err)
	}
	return list, nil
}

// Update persists outlet master data changes.
func (r *OutletRepo) Update(ctx context.Context, o *outlet.Outlet) error {
	q := r.builder.
		Update(outletsTable).
		Set("name", o.Name).
		Set("agen_id", o.AgenID).
		Set("address", o.Address).
		Set("phone", o.Phone).
		Set("active", o.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": o.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update outlet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("outlet", o.ID)
	}
	return nil
}

// CreateAgen inserts a new distributor.
func (r *OutletRepo) CreateAgen(ctx context.Context, a *outlet.Agen) error {
	q := r.builder.
		Insert(agensTable).
		Columns("id", "code", "name", "active", "created_at").
		Values(a.ID, a.Code, a.Name, a.Active, a.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert agen: %w", err)
	}
	return nil
}

// GetAgenByID retrieves a distributor.
func (r *OutletRepo) GetAgenByID(ctx context.Context, agenID id.ID) (*outlet.Agen, error) {
	q := r.builder.
		Select("id", "code", "name", "active", "created_at").
		From(agensTable).
		Where(squirrel.Eq{"id": agenID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var a outlet.Agen
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &a, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("agen", agenID)
		}
		return nil, fmt.Errorf("get agen: %w", err)
	}
	return &a, nil
}

// ListAgens retrieves all distributors.
func (r *OutletRepo) ListAgens(ctx context.Context) ([]*outlet.Agen, error) {
	q := r.builder.
		Select("id", "code", "name", "active", "created_at").
		From(agensTable).
		OrderBy("code")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var list []*outlet.Agen
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list agens: %w", err)
	}
	return list, nil
}
