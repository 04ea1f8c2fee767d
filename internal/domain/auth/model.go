// Package auth provides user authentication and JWT issuance.
package auth

import (
	"time"

	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// User is an account that can sign in. Pangkalan users are bound to one
// outlet; agen users to one distributor; admins to neither.
type User struct {
	ID           id.ID      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"fullName,omitempty"`
	Role         appctx.Role `db:"role" json:"role"`
	OutletID     *id.ID     `db:"outlet_id" json:"outletId,omitempty"`
	AgenID       *id.ID     `db:"agen_id" json:"agenId,omitempty"`
	Active       bool       `db:"active" json:"active"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}
