package dto

import (
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest represents login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest represents a request to create a user account.
type RegisterUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName string  `json:"fullName"`
	Role     string  `json:"role" binding:"required"`
	OutletID *string `json:"outletId,omitempty"`
	AgenID   *string `json:"agenId,omitempty"`
}

// --- Response DTOs ---

// UserResponse represents a user in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"fullName,omitempty"`
	Role     string  `json:"role"`
	OutletID *string `json:"outletId,omitempty"`
	AgenID   *string `json:"agenId,omitempty"`
	Active   bool    `json:"active"`
}

// FromUser converts domain entity to response DTO.
func FromUser(u *auth.User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		FullName: u.FullName,
		Role:     string(u.Role),
		Active:   u.Active,
	}
	if u.OutletID != nil {
		val := u.OutletID.String()
		resp.OutletID = &val
	}
	if u.AgenID != nil {
		val := u.AgenID.String()
		resp.AgenID = &val
	}
	return resp
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// FromLoginResult converts domain result to response DTO.
func FromLoginResult(r *auth.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User:      FromUser(r.User),
	}
}
