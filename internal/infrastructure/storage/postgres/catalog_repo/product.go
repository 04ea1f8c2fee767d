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
	"github.com/xinnxz/sim4lon-sub000/internal/domain/catalogs/product"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

var productColumns = []string{
	"id", "code", "name", "size_class", "cost_price", "sell_price", "active", "created_at", "updated_at",
}

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := r.builder.
		Insert(productsTable).
		Columns(productColumns...).
		Values(p.ID, p.Code, p.Name, p.SizeClass, p.CostPrice, p.SellPrice, p.Active, p.CreatedAt, p.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.builder.Select(productColumns...).From(productsTable).Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetBySizeClass retrieves the active product for a cylinder class.
func (r *ProductRepo) GetBySizeClass(ctx context.Context, size product.SizeClass) (*product.Product, error) {
	q := r.builder.Select(productColumns...).From(productsTable).
		Where(squirrel.Eq{"size_class": size, "active": true}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("product", string(size))
		}
		return nil, fmt.Errorf("get product by size class: %w", err)
	}
	return &p, nil
}

// List retrieves products with filtering.
func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	q := r.builder.Select(productColumns...).From(productsTable).OrderBy("size_class")

	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
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

	var list []*product.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Update persists product catalog changes.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := r.builder.
		Update(productsTable).
		Set("name", p.Name).
		Set("cost_price", p.CostPrice).
		Set("sell_price", p.SellPrice).
		Set("active", p.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}
