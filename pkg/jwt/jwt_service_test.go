package jwt

import (
	"testing"
	"time"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateTokenUser("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	token, err := NewJWTService("one").GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, _, err = NewJWTService("two").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestExpiredToken(t *testing.T) {
	svc := &jwtService{
		secretKey: "secret",
		issuer:    "FOODGRAM",
		now:       func() time.Time { return time.Now().Add(-48 * time.Hour) },
	}
	token, err := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, _, err = NewJWTService("secret").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGarbageToken(t *testing.T) {
	_, _, err := NewJWTService("secret").GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
