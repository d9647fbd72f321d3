package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT claims shape issued by the identity provider.
// The core never verifies credentials itself; it trusts the verified
// subject as authorId/requestorId.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard claims (sub, iss, aud, exp, iat, ...)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// IsGuest reports whether the token belongs to an anonymous session.
// Guests may read but never author discussions or operations.
func (c *AccessClaims) IsGuest() bool {
	return c.IsAnonymous || c.Role != "authenticated"
}
