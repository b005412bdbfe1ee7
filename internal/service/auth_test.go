package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/jugador-equipo/internal/domain"
)

func TestAuthServiceRoundTrip(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)

	token, err := svc.IssueToken("admin", "ROLE_ADMIN", "ROLE_USER")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, claims.Authorities())
}

func TestAuthServiceRejectsForeignSecret(t *testing.T) {
	token, err := NewAuthService("other", time.Hour).IssueToken("admin")
	require.NoError(t, err)

	_, err = NewAuthService("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.IssueToken("admin")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthServiceRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewAuthService("secret", time.Hour).ValidateToken(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthServiceRequiresLogin(t *testing.T) {
	_, err := NewAuthService("secret", time.Hour).IssueToken("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
