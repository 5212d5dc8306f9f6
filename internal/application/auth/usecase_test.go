package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/radiator-inventory/internal/application/auth"
	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/radiator-inventory/pkg/jwt"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), store
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Example.com", Password: "longpassword", Role: " Manager "})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "manager", u.Role)
	assert.True(t, u.IsActive)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "longpassword"})
	require.NoError(t, err)
	assert.NotNil(t, res.User.LastLoginAt)

	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "manager", role)
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "longpassword", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "longpassword"})
	require.NoError(t, err)
	assert.Equal(t, "sales", u.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.C", Password: "longpassword"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Failures(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "longpassword"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "wrongpassword"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@b.c", Password: "longpassword"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, store.Users().Update(ctx, stored))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.c", Password: "longpassword"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
