package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roommatefinder/room-service/internal/room/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func resolveWith(t *testing.T, authorization string) domain.Identity {
	t.Helper()
	var resolved domain.Identity
	handler := Identity(testSecret, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = IdentityFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return resolved
}

func TestIdentity_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		UserID: "u1",
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	caller := resolveWith(t, "Bearer "+token)

	assert.Equal(t, "u1", caller.ID)
	assert.Equal(t, "a@x.com", caller.Email)
	assert.False(t, caller.IsAnonymous())
}

func TestIdentity_NoHeaderIsAnonymous(t *testing.T) {
	caller := resolveWith(t, "")
	assert.True(t, caller.IsAnonymous())
}

func TestIdentity_MalformedHeaderIsAnonymous(t *testing.T) {
	assert.True(t, resolveWith(t, "not-a-bearer").IsAnonymous())
	assert.True(t, resolveWith(t, "Basic dXNlcjpwYXNz").IsAnonymous())
	assert.True(t, resolveWith(t, "Bearer").IsAnonymous())
}

func TestIdentity_WrongSecretIsAnonymous(t *testing.T) {
	token := signToken(t, "other-secret", Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	assert.True(t, resolveWith(t, "Bearer "+token).IsAnonymous())
}

func TestIdentity_ExpiredTokenIsAnonymous(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	assert.True(t, resolveWith(t, "Bearer "+token).IsAnonymous())
}

func TestIdentity_TokenWithoutEmailIsAnonymous(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	assert.True(t, resolveWith(t, "Bearer "+token).IsAnonymous())
}
