package realtime

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(userID),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTResolverTokenQueryParam(t *testing.T) {
	resolver := NewJWTResolver("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/ws?token="+signToken(t, "test-secret", 7), nil)

	identity := resolver.Resolve(req)
	assert.Equal(t, IdentityVerified, identity.Status)
	assert.Equal(t, uint(7), identity.UserID)
}

func TestJWTResolverSessionCookie(t *testing.T) {
	resolver := NewJWTResolver("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: signToken(t, "test-secret", 12)})

	identity := resolver.Resolve(req)
	assert.Equal(t, IdentityVerified, identity.Status)
	assert.Equal(t, uint(12), identity.UserID)
}

func TestJWTResolverNoToken(t *testing.T) {
	resolver := NewJWTResolver("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)

	assert.Equal(t, Identity{Status: IdentityAbsent}, resolver.Resolve(req))
}

func TestJWTResolverRejectsUnexpectedSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"user_id": float64(7)})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	resolver := NewJWTResolver("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/ws?token="+signed, nil)

	assert.Equal(t, Identity{Status: IdentityAbsent}, resolver.Resolve(req))
}

func TestJWTResolverBadSignature(t *testing.T) {
	resolver := NewJWTResolver("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/ws?token="+signToken(t, "wrong-secret", 7), nil)

	assert.Equal(t, Identity{Status: IdentityAbsent}, resolver.Resolve(req))
}
