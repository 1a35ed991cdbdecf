package realtime

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityStatus tags the result of resolving a transport-level session
type IdentityStatus int

const (
	// IdentityAbsent means the request carried no usable session
	// identity; the auth frame's claimed user ID falls back to a
	// user-existence check (weaker guarantee).
	IdentityAbsent IdentityStatus = iota

	// IdentityVerified means the session token authenticated a specific
	// user; the auth frame's claimed user ID must match it.
	IdentityVerified
)

// Identity is the outcome of resolving the transport session before the
// connection is upgraded
type Identity struct {
	Status IdentityStatus
	UserID uint
}

// SessionResolver resolves an externally-established session identity
// from the upgrade request, if one exists
type SessionResolver interface {
	Resolve(r *http.Request) Identity
}

// JWTResolver resolves the session from a JWT carried in the `token`
// query parameter (the usual path for browser WebSocket clients, which
// cannot set headers) or a `session` cookie.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (j *JWTResolver) Resolve(r *http.Request) Identity {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		if cookie, err := r.Cookie("session"); err == nil {
			tokenString = cookie.Value
		}
	}
	if tokenString == "" {
		return Identity{Status: IdentityAbsent}
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Identity{Status: IdentityAbsent}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{Status: IdentityAbsent}
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{Status: IdentityAbsent}
	}

	return Identity{Status: IdentityVerified, UserID: uint(userID)}
}
