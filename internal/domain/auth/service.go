package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/pkg/logger"
)

// Service authenticates users and issues tokens.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtSvc *JWTService) *Service {
	return &Service{repo: repo, jwt: jwtSvc}
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Login verifies credentials and issues an access token.
// Unknown usernames and wrong passwords return the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperror.NewValidation("username and password are required")
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !u.Active {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID, "role", u.Role)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// CurrentUser loads the account behind an authenticated request.
func (s *Service) CurrentUser(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password, fullName string, role appctx.Role, outletID, agenID *id.ID) (*User, error) {
	if username == "" {
		return nil, apperror.NewValidation("username is required")
	}
	if len(password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters")
	}
	switch role {
	case appctx.RolePangkalan, appctx.RoleAgen, appctx.RoleAdmin:
	default:
		return nil, apperror.NewValidation("invalid role").WithDetail("role", string(role))
	}
	if role == appctx.RolePangkalan && (outletID == nil || id.IsNil(*outletID)) {
		return nil, apperror.NewValidation("pangkalan users require an outlet")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:           id.New(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		OutletID:     outletID,
		AgenID:       agenID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
