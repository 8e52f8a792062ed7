package auth

import "time"

// DefaultCookieName is the session cookie the routing layer manages.
const DefaultCookieName = "jwt"

// SessionCookie carries the attributes the HTTP layer attaches to the
// session cookie. The core never touches the wire; it only describes
// the cookie to set or clear.
type SessionCookie struct {
	Name     string
	Value    string
	Path     string
	MaxAge   time.Duration
	HTTPOnly bool
	Secure   bool
	SameSite string
}

func newSessionCookie(name, token string, ttl time.Duration, secure bool) *SessionCookie {
	if name == "" {
		name = DefaultCookieName
	}

	return &SessionCookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   ttl,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	}
}

// clearSessionCookie returns the cookie that instructs the client to
// drop its session.
func clearSessionCookie(name string, secure bool) *SessionCookie {
	if name == "" {
		name = DefaultCookieName
	}

	return &SessionCookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -time.Hour * 24 * 365,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	}
}
