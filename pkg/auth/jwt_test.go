package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		UserID: "user1",
		Email:  "user1@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tomato-backend",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestValidateToken_Success(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "tomato-backend"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(signToken(t, testSecret, validClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "user1@example.com", claims.Email)
}

func TestValidateToken_StripsBearerPrefix(t *testing.T) {
	validator, _ := NewJWTValidator(JWTConfig{SecretKey: testSecret})

	claims, err := validator.ValidateToken("Bearer " + signToken(t, testSecret, validClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
}

func TestValidateToken_Missing(t *testing.T) {
	validator, _ := NewJWTValidator(JWTConfig{SecretKey: testSecret})

	_, err := validator.ValidateToken("")

	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateToken_Expired(t *testing.T) {
	validator, _ := NewJWTValidator(JWTConfig{SecretKey: testSecret})

	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := validator.ValidateToken(signToken(t, testSecret, claims))

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	validator, _ := NewJWTValidator(JWTConfig{SecretKey: testSecret})

	_, err := validator.ValidateToken(signToken(t, "other-secret", validClaims()))

	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	validator, _ := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "tomato-backend"})

	claims := validClaims()
	claims.Issuer = "someone-else"

	_, err := validator.ValidateToken(signToken(t, testSecret, claims))

	assert.Error(t, err)
}

func TestValidateToken_MissingSubject(t *testing.T) {
	validator, _ := NewJWTValidator(JWTConfig{SecretKey: testSecret})

	claims := validClaims()
	claims.UserID = ""

	_, err := validator.ValidateToken(signToken(t, testSecret, claims))

	assert.Error(t, err)
}
