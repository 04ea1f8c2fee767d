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
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/customer"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const customersTable = "customers"

var customerColumns = []string{
	"id", "outlet_id", "name", "phone", "address", "created_at", "updated_at",
}

// Compile-time check.
var _ customer.Repository = (*CustomerRepo)(nil)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	q := r.builder.
		Insert(customersTable).
		Columns(customerColumns...).
		Values(c.ID, c.OutletID, c.Name, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	q := r.builder.Select(customerColumns...).From(customersTable).Where(squirrel.Eq{"id": customerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("customer", customerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// ListByOutlet retrieves an outlet's customers.
func (r *CustomerRepo) ListByOutlet(ctx context.Context, outletID id.ID, filter customer.ListFilter) ([]*customer.Customer, error) {
	q := r.builder.Select(customerColumns...).From(customersTable).
		Where(squirrel.Eq{"outlet_id": outletID}).
		OrderBy("name")

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

	var list []*customer.Customer
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return list, nil
}

// Update persists customer changes.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	q := r.builder.
		Update(customersTable).
		Set("name", c.Name).
		Set("phone", c.Phone).
		Set("address", c.Address).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID)
	}
	return nil
}
