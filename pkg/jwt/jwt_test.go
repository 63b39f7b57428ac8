package jwt

import (
	"testing"
	"time"

	"clinic-scheduling-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService(time.Minute)
	tenantID := uint(4)
	subject := Subject{UserID: 12, Username: "dra.lopez", Role: "Especialista", TenantID: &tenantID}

	token, tokenID, err := svc.GenerateAccessToken(subject)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.Subject)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)

	refresh, _, err := svc.GenerateRefreshToken(subject)
	require.NoError(t, err)
	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestJWTService_SuperAdminHasNoTenant(t *testing.T) {
	svc := newTestService(time.Minute)

	token, _, err := svc.GenerateAccessToken(Subject{UserID: 1, Username: "root", Role: "Super Admin"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.TenantID)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newTestService(-time.Minute)
	expired, _, err := svc.GenerateAccessToken(Subject{UserID: 1})
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute})
	foreign, _, err := other.GenerateAccessToken(Subject{UserID: 1})
	require.NoError(t, err)

	_, err = newTestService(time.Minute).ValidateToken(foreign)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenKeys(t *testing.T) {
	assert.Equal(t, "access_token:12:abc", AccessTokenKey(12, "abc"))
	assert.Equal(t, "refresh_token:12:abc", RefreshTokenKey(12, "abc"))
}
