package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey   []byte
	ttl          time.Duration
	issuer       string
	audience     jwt.ClaimStrings
	cookieName   string
	cookieSecure bool
	banned       BannedTokenStore
	logger       Logger
}

// NewTokenService creates a new TokenService. The configuration object
// is constructed once at startup; the banned token store backs the
// optional revocation check during Validate.
func NewTokenService(cfg Config, banned BannedTokenStore, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	ttl := time.Hour
	if cfg.GetTokenExpiration() > 0 {
		ttl = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &TokenServiceImpl{
		signingKey:   []byte(cfg.GetSigningKey()),
		ttl:          ttl,
		issuer:       cfg.GetIssuer(),
		audience:     cfg.GetAudience(),
		cookieName:   cfg.GetCookieName(),
		cookieSecure: cfg.GetCookieSecure(),
		banned:       banned,
		logger:       logger,
	}
}

// Issue builds signed claims {subject: email, expiry: now + TTL} and
// returns the opaque token string plus the cookie attributes to attach.
func (ts *TokenServiceImpl) Issue(email Email) (string, *SessionCookie, error) {
	now := time.Now()

	var aud jwt.ClaimStrings
	if len(ts.audience) > 0 {
		aud = make(jwt.ClaimStrings, len(ts.audience))
		copy(aud, ts.audience)
	}

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   email.String(),
			Audience:  aud,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	return signedString, newSessionCookie(ts.cookieName, signedString, ts.ttl, ts.cookieSecure), nil
}

type validateOptions struct {
	revocationCheck bool
	ctx             context.Context
}

// ValidateOption customizes token validation.
type ValidateOption func(*validateOptions)

// WithRevocationCheck makes Validate consult the banned token store
// after the signature and expiry pass. A token failing either never
// reaches the ban check.
func WithRevocationCheck(ctx context.Context) ValidateOption {
	return func(o *validateOptions) {
		o.revocationCheck = true
		o.ctx = ctx
	}
}

// Validate parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Validate(tokenString string, opts ...ValidateOption) (*SessionClaims, error) {
	options := &validateOptions{ctx: context.Background()}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	if options.revocationCheck && ts.banned.IsBanned(options.ctx, tokenString) {
		return nil, ErrTokenBanned
	}

	return claims, nil
}

// Revoke adds the token to the banned set keyed with its expiry claim.
func (ts *TokenServiceImpl) Revoke(ctx context.Context, tokenString string, expiry int64) error {
	return ts.banned.Ban(ctx, tokenString, expiry)
}
