package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/infrastructure/auth"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)

	token, err := manager.Generate("owner-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-42", claims.OwnerID)
}

func TestJWTManager_Expired(t *testing.T) {
	manager := auth.NewJWTManager("secret", -time.Minute)

	token, err := manager.Generate("owner-42")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := auth.NewJWTManager("secret-a", time.Hour).Generate("owner-42")
	require.NoError(t, err)

	_, err = auth.NewJWTManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	_, err := auth.NewJWTManager("secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
