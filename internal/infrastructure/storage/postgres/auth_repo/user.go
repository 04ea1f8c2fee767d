// Package auth_repo provides the PostgreSQL implementation of user storage.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/auth"
	"github.com/xinnxz/sim4lon-sub000/internal/infrastructure/storage/postgres"
)

const usersTable = "users"

var userColumns = []string{
	"id", "username", "password_hash", "full_name", "role",
	"outlet_id", "agen_id", "active", "created_at", "updated_at",
}

// Compile-time check.
var _ auth.Repository = (*UserRepo)(nil)

// UserRepo implements auth.Repository.
type UserRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	q := r.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(u.ID, u.Username, u.PasswordHash, u.FullName, u.Role,
			u.OutletID, u.AgenID, u.Active, u.CreatedAt, u.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": userID}, userID)
}

// GetByUsername retrieves a user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) getOne(ctx context.Context, pred squirrel.Eq, ref any) (*auth.User, error) {
	q := r.builder.Select(userColumns...).From(usersTable).Where(pred)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", ref)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
