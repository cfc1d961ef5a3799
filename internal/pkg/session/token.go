/*
Package session handles the session token the chat service issues to the bot.

The token is a JWT signed by the service; the bot cannot verify the signature
(it does not hold the service secret) but reads the claims to track identity
and expiry, so it can reconnect before the session lapses.
*/
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// RefreshWindow defines how long before the token expires the bot should
// attempt to refresh its session.
const RefreshWindow = 2 * time.Minute

// Claims holds the fields of interest from the service-issued session token.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Handle string `json:"handle,omitempty"`
	jwt.StandardClaims
}

// ParseToken decodes the claims of a session token without verifying its
// signature. Verification is the service's job; the bot only needs the claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	return claims, nil
}

// Expiry returns the token's expiration time, or the zero time when the token
// carries no expiry claim.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0)
}

// NearExpiry reports whether the token expires within the given window.
// Tokens without an expiry claim never near expiry.
func (c *Claims) NearExpiry(window time.Duration) bool {
	expiry := c.Expiry()
	if expiry.IsZero() {
		return false
	}
	return time.Now().After(expiry.Add(-window))
}
