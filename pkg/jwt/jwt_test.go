package jwt

import (
	"testing"
	"time"

	"masterbook/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(expiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		SessionExpiry: expiry,
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := testService(time.Hour)

	token, tokenID, err := svc.GenerateSessionToken(123456789, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), claims.TgUserID)
	assert.Equal(t, 1, claims.MasterID)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := testService(time.Hour).GenerateSessionToken(1, 1)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "different", SessionExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testService(-time.Minute)
	token, _, err := svc.GenerateSessionToken(1, 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := testService(time.Hour).ValidateToken("not-a-token")
	assert.Error(t, err)
}
