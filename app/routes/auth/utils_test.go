package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafidyRakotonirina/blessing/app/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse123", hash)
	assert.True(t, CheckPasswordHash("motdepasse123", hash))
	assert.False(t, CheckPasswordHash("autremotdepasse", hash))
	assert.False(t, CheckPasswordHash("motdepasse123", "pas-un-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	email := "admin@example.com"
	user := &models.User{
		ID:    "usr-1",
		Email: &email,
		Role:  models.RoleAdmin,
	}

	access, refresh, err := GenerateTokens(user)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	claims, err = ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
}

func TestTokensNotInterchangeable(t *testing.T) {
	user := &models.User{ID: "usr-1", Role: models.RoleSecretaire}

	access, refresh, err := GenerateTokens(user)
	require.NoError(t, err)

	// access and refresh tokens are signed with different secrets
	_, err = ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateAccessToken("pas.un.jwt")
	assert.Error(t, err)
	_, err = ValidateAccessToken("")
	assert.Error(t, err)
}
