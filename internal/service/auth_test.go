package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/testhelpers"
	"github.com/forkful/backend/internal/types"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(testhelpers.SetupTestDB(t), "test-jwt-secret")
}

func registerRequest() types.RegisterRequest {
	return types.RegisterRequest{
		Name:     "Chef Marco",
		Email:    "marco@example.com",
		Username: "chefmarco",
		Password: "password123",
	}
}

func TestRegister(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "chefmarco", claims.Username)

	var user models.User
	require.NoError(t, svc.db.Where("email = ?", "marco@example.com").First(&user).Error)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEqual(t, "password123", user.PasswordHash)

	var profile models.Profile
	require.NoError(t, svc.db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "chefmarco", profile.Username)
	assert.Equal(t, "Chef Marco", profile.FullName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "othermarco"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "marco@example.com", "password123")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "chefmarco", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "marco@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	svc := newTestAuthService(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewAuthService(svc.db, "other-secret")
		token, err := other.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
