package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/aushadhi/config"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := auth.GenerateToken(42, auth.RoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, string(auth.RoleCustomer), claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	token, err := auth.GenerateToken(1, auth.RoleAdmin)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = auth.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	// Correctly signed with the live secret, but past its expiry.
	claims := auth.Claims{
		UserID: 7,
		Role:   string(auth.RoleCustomer),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRole(t *testing.T) {
	admin, err := auth.ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, admin)

	customer, err := auth.ParseRole("customer")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCustomer, customer)

	_, err = auth.ParseRole("superuser")
	assert.Error(t, err)

	_, err = auth.ParseRole("")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
