package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret string, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID:   42,
		Email:    "user@example.com",
		Username: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenService_IssueValidateRoundtrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(7, "jane@example.com", "jane")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane", claims.Username)
}

func TestTokenService_IssueSetsFixedLifetime(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(1, "a@example.com", "a")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, SessionTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	svc := NewTokenService("test-secret")
	now := time.Now()

	t.Run("valid one second before expiry", func(t *testing.T) {
		exp := now.Add(1 * time.Second)
		token := signedToken(t, "test-secret", exp.Add(-SessionTTL), exp)
		_, err := svc.Validate(token)
		assert.NoError(t, err)
	})

	t.Run("invalid one second after expiry", func(t *testing.T) {
		exp := now.Add(-1 * time.Second)
		token := signedToken(t, "test-secret", exp.Add(-SessionTTL), exp)
		_, err := svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_ValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, tokenString := range []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
		"eyJhbGciOiJIUzI1NiJ9.e30.",
		signedToken(t, "other-secret", time.Now(), time.Now().Add(time.Hour)),
	} {
		_, err := svc.Validate(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenString)
	}
}

func TestTokenService_ValidateRejectsUnsignedToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_FailureReasonsAreIndistinguishable(t *testing.T) {
	svc := NewTokenService("test-secret")

	expired := signedToken(t, "test-secret", time.Now().Add(-25*time.Hour), time.Now().Add(-time.Hour))
	forged := signedToken(t, "wrong-secret", time.Now(), time.Now().Add(time.Hour))

	_, errExpired := svc.Validate(expired)
	_, errForged := svc.Validate(forged)
	_, errMalformed := svc.Validate("garbage")

	assert.Equal(t, errExpired, errForged)
	assert.Equal(t, errForged, errMalformed)
}
