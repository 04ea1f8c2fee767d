package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinnxz/sim4lon-sub000/internal/core/apperror"
	appctx "github.com/xinnxz/sim4lon-sub000/internal/core/context"
	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

type memUserRepo struct {
	users map[string]*User
}

func (r *memUserRepo) Create(_ context.Context, u *User) error {
	r.users[u.Username] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", username)
}

func newTestService() *Service {
	repo := &memUserRepo{users: make(map[string]*User)}
	return NewService(repo, NewJWTService(DefaultJWTConfig("test-secret")))
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	outletID := id.New()

	u, err := svc.Register(ctx, "pangkalan1", "rahasia-sekali", "Pangkalan Maju", appctx.RolePangkalan, &outletID, nil)
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia-sekali", u.PasswordHash)

	res, err := svc.Login(ctx, "pangkalan1", "rahasia-sekali")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	user, err := svc.jwt.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), user.UserID)
	assert.Equal(t, appctx.RolePangkalan, user.Role)
	require.NotNil(t, user.OutletID)
	assert.Equal(t, outletID, *user.OutletID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "admin", "password123", "", appctx.RoleAdmin, nil, nil)
	require.NoError(t, err)

	for _, tc := range []struct{ user, pass string }{
		{"admin", "wrong-password"},
		{"no-such-user", "password123"},
	} {
		_, err := svc.Login(ctx, tc.user, tc.pass)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "u", "short", "", appctx.RoleAdmin, nil, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = svc.Register(ctx, "u", "password123", "", appctx.RolePangkalan, nil, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = svc.Register(ctx, "u", "password123", "", appctx.Role("superuser"), nil, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	u := &User{ID: id.New(), Username: "x", Role: appctx.RoleAdmin}
	token, _, err := issuer.GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}
