package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(42, "ada@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Empty(t, claims.ID) // access tokens carry no JTI
}

func TestJWTService_RefreshTokenCarriesJTI(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(42, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)

	extracted, err := svc.ExtractTokenID(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("one-secret").GenerateAccessToken(42, "ada@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("other-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExtractTokenID_NoJTI(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateAccessToken(42, "ada@example.com")
	require.NoError(t, err)

	_, err = svc.ExtractTokenID(token)
	assert.Error(t, err)
}
