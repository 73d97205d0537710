package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityFromToken derives the account identity to key local state by.
// When the bearer token is a JWT with a non-empty subject claim, that
// server-issued id wins; otherwise fallback (the login email) is used.
// The token is not verified here; the server is the authority on validity.
func IdentityFromToken(token, fallback string) string {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if claims.Subject != "" {
			return claims.Subject
		}
	}
	return fallback
}

// ExpiresAt returns the token's exp claim, if the token is a JWT carrying one.
// Used only as a fast path to skip a redundant login; expiry is otherwise
// detected reactively when the API rejects a request.
func ExpiresAt(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
