package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the signed claims carried by a session token:
// subject is the account email, expiry bounds the session.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Subject returns the subject claim, the account email.
func (c *SessionClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time.
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// ExpiryUnix returns the expiry claim as a Unix timestamp, the form
// the banned token store records.
func (c *SessionClaims) ExpiryUnix() int64 {
	return c.Expires().Unix()
}

// IssuedAt returns the issued at time.
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
