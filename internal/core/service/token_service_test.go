package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatech/storefront-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 0)
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue("alice@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.True(t, claims.IssuedAt.Equal(issuedAt))
	assert.True(t, claims.ExpiresAt.Equal(issuedAt.Add(24*time.Hour)))
}

func TestTokenService_Expiry(t *testing.T) {
	svc := NewTokenService("secret", DefaultTokenTTL)
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue("alice@example.com")
	require.NoError(t, err)

	svc.now = fixedClock(issuedAt.Add(23*time.Hour + 59*time.Minute))
	_, err = svc.Verify(token)
	require.NoError(t, err, "credential must still be valid just before 24h")

	svc.now = fixedClock(issuedAt.Add(24*time.Hour + time.Second))
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "expired")
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	other, err := NewTokenService("other", time.Hour).Issue("alice@example.com")
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice@example.com"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"malformed":       "not.a.token",
		"empty":           "",
		"wrong secret":    other,
		"no expiry":       noExp,
		"unexpected alg":  hs512,
		"missing subject": noSubject,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(raw)
			assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "got %v", err)
		})
	}
}

func TestTokenService_IssueRequiresEmail(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).Issue("")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
