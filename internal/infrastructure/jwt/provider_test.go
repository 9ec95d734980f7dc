package jwtinfra

import (
	"testing"
	"time"

	"github.com/internship-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(expiry time.Duration) *Provider {
	return NewProvider(&config.Config{JWTSecret: "test-secret", JWTExpiry: expiry})
}

func TestProvider_SignAndVerify(t *testing.T) {
	p := newTestProvider(time.Hour)

	token, err := p.Sign("user-1", "alice@example.com", "student")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
}

func TestProvider_Verify_WrongSecret(t *testing.T) {
	p := newTestProvider(time.Hour)
	token, err := p.Sign("user-1", "alice@example.com", "student")
	require.NoError(t, err)

	other := NewProvider(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestProvider_Verify_Expired(t *testing.T) {
	p := newTestProvider(-time.Minute)
	token, err := p.Sign("user-1", "alice@example.com", "student")
	require.NoError(t, err)

	_, err = p.Verify(token)
	assert.Error(t, err)
}

func TestProvider_Verify_Garbage(t *testing.T) {
	p := newTestProvider(time.Hour)
	_, err := p.Verify("not.a.token")
	assert.Error(t, err)
}
