package auth

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Repository defines storage operations for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
