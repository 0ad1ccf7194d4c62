package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/models"
	"clubhouse/internal/policy"
)

func testUser() *models.User {
	u := &models.User{
		Email: "member@club.test",
		Role:  policy.RoleEditor,
	}
	u.ID = "7e6f2f1c-9a1d-4e14-b6a5-0f2d0d2c9f11"
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	user := testUser()

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "editor", claims.Role)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

func TestRefreshTokenCarriesOnlyUserID(t *testing.T) {
	token, err := GenerateRefreshToken(testUser(), "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, testUser().ID, claims.UserID)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
}
