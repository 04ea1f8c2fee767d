// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Role identifies the kind of party a token belongs to.
type Role string

const (
	// RolePangkalan is a retail outlet operator.
	RolePangkalan Role = "pangkalan"
	// RoleAgen is a distributor-side user.
	RoleAgen Role = "agen"
	// RoleAdmin has unrestricted access.
	RoleAdmin Role = "admin"
)

// UserContext contains authenticated caller information.
// OutletID is set for pangkalan users, AgenID for distributor users.
type UserContext struct {
	UserID   string
	Username string
	Role     Role
	OutletID *id.ID
	AgenID   *id.ID
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetOutletID returns the caller's outlet ID, or nil for non-outlet users.
func GetOutletID(ctx context.Context) *id.ID {
	if u := GetUser(ctx); u != nil {
		return u.OutletID
	}
	return nil
}

// HasRole checks if the caller has the given role.
func HasRole(ctx context.Context, role Role) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}

// CanAccessOutlet reports whether the caller may act on data owned by the
// given outlet. Admins may access any outlet; pangkalan users only their own.
func CanAccessOutlet(ctx context.Context, outletID id.ID) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	if u.Role == RoleAdmin {
		return true
	}
	return u.OutletID != nil && *u.OutletID == outletID
}
