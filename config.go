package auth

// SimpleConfig is a plain Config implementation for callers that build
// their configuration by hand (tests, small deployments). The binary
// loads one from file and environment at startup.
type SimpleConfig struct {
	SigningKey      string   `json:"signing_key" koanf:"signing_key"`
	TokenExpiration int      `json:"token_expiration" koanf:"token_expiration"`
	Issuer          string   `json:"issuer" koanf:"issuer"`
	Audience        []string `json:"audience" koanf:"audience"`
	CookieName      string   `json:"cookie_name" koanf:"cookie_name"`
	CookieSecure    bool     `json:"cookie_secure" koanf:"cookie_secure"`
}

var _ Config = (*SimpleConfig)(nil)

func (c *SimpleConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *SimpleConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c *SimpleConfig) GetIssuer() string {
	return c.Issuer
}

func (c *SimpleConfig) GetAudience() []string {
	return c.Audience
}

func (c *SimpleConfig) GetCookieName() string {
	if c.CookieName == "" {
		return DefaultCookieName
	}
	return c.CookieName
}

func (c *SimpleConfig) GetCookieSecure() bool {
	return c.CookieSecure
}
