package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options. Loaded once at startup and passed into
// constructors explicitly; nothing reads configuration lazily.
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetCookieName() string
	GetCookieSecure() bool
}

// UserStore owns the user registry. Add is an atomic insert-if-absent:
// two concurrent registrations for the same email cannot both succeed.
type UserStore interface {
	Add(ctx context.Context, user User) error
	Get(ctx context.Context, email Email) (User, error)
	Validate(ctx context.Context, email Email, password Password) error
}

// BannedTokenStore owns the revocation set. Membership is monotonic:
// once banned, a token stays banned for the process lifetime. Ban is
// idempotent and IsBanned is a pure membership test; no expiry based
// eviction runs here.
type BannedTokenStore interface {
	Ban(ctx context.Context, token string, expiry int64) error
	IsBanned(ctx context.Context, token string) bool
}

// TwoFACodeStore owns pending challenges, at most one per email. Put
// overwrites any prior pair, which permanently invalidates the old
// login attempt. Remove of an absent entry is not an error.
type TwoFACodeStore interface {
	Put(ctx context.Context, email Email, id LoginAttemptID, code TwoFACode) error
	Get(ctx context.Context, email Email) (LoginAttemptID, TwoFACode, error)
	Remove(ctx context.Context, email Email) error
}

// TokenService issues and validates signed session tokens.
type TokenService interface {
	Issue(email Email) (string, *SessionCookie, error)
	Validate(tokenString string, opts ...ValidateOption) (*SessionClaims, error)
	Revoke(ctx context.Context, tokenString string, expiry int64) error
}

// CodeSender delivers a freshly generated 2FA code to the user. The
// code never travels back through the API response.
type CodeSender interface {
	SendCode(ctx context.Context, email Email, code TwoFACode) error
}

// Authenticator holds the operations the HTTP layer composes.
type Authenticator interface {
	Signup(ctx context.Context, email, password string, requiresTwoFA bool) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyTwoFA(ctx context.Context, email, loginAttemptID, code string) (*LoginResult, error)
	Logout(ctx context.Context, token string) (*SessionCookie, error)
	VerifyToken(ctx context.Context, token string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
