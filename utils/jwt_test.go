package utils

import (
	"testing"
	"time"

	"celebrity-booking-system/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("test-secret", "user-123", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", "user-123", models.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ParseToken("test-secret", "not-a-token")
	require.Error(t, err)
}

func TestTokenRejectsOtherSigningMethods(t *testing.T) {
	claims := &Claims{UserID: "user-123", Role: models.RoleUser}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	// Same key, but only HS256 is accepted.
	_, err = ParseToken("test-secret", signed)
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, CheckPassword(hash, "s3cret-pass"))
	require.False(t, CheckPassword(hash, "wrong"))
}
