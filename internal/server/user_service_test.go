package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/studygram/internal/config"
	"github.com/jonathan/studygram/internal/study"
	"github.com/jonathan/studygram/internal/types"
)

func newTestUserService() *UserService {
	return NewUserService(study.NewMemoryRepository(), &config.PasswordConfig{BcryptCost: 10, Pepper: "pepper"})
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "  Grace ", Email: " grace@example.com ", Password: "hopper1906"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.Name)
	assert.Equal(t, "grace@example.com", user.Email)
	assert.NotEqual(t, uuid.Nil, user.ID)

	loggedIn, err := svc.Login(ctx, &types.LoginRequest{Email: "GRACE@example.com", Password: "hopper1906"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)
}

func TestUserService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()
	_, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Grace", Email: "grace@example.com", Password: "hopper1906"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &types.CreateUserRequest{Name: "Other", Email: "grace@example.com", Password: "password123"})
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)

	_, err = svc.Register(ctx, &types.CreateUserRequest{Name: "Short", Email: "short@example.com", Password: "short"})
	var invalid *ErrValidation
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "password", invalid.Field)

	var badCreds *ErrInvalidCredentials
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "grace@example.com", Password: "wrong"})
	assert.ErrorAs(t, err, &badCreds)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "unknown@example.com", Password: "hopper1906"})
	assert.ErrorAs(t, err, &badCreds)

	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, study.ErrNotFound)
}
