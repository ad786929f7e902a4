package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/auth"
	"atelier-backend/internal/models"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func testUser() models.User {
	return models.User{
		ID:    "user-123",
		Email: "florist@atelier.local",
		Role:  models.RoleFlorist,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword("s3cret-pass", hash))
	assert.False(t, auth.CheckPassword("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.IssueToken(testSecret, time.Hour, testUser())
	require.NoError(t, err)

	claims, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "florist@atelier.local", claims.Email)
	assert.Equal(t, models.RoleFlorist, claims.Role)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := auth.IssueToken(testSecret, -time.Minute, testUser())
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := auth.IssueToken(testSecret, time.Hour, testUser())
	require.NoError(t, err)

	_, err = auth.ParseToken("another-secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	user := testUser()
	user.Role = models.Role("Intern")
	token, err := auth.IssueToken(testSecret, time.Hour, user)
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.Error(t, err)
}
