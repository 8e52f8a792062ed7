package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	auth "github.com/goliatone/auth-service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() *auth.SimpleConfig {
	return &auth.SimpleConfig{
		SigningKey:      "test-signing-key",
		TokenExpiration: 1,
		Issuer:          "test-issuer",
		Audience:        []string{"test-audience"},
		CookieSecure:    true,
	}
}

func TestTokenService_Issue(t *testing.T) {
	cfg := testTokenConfig()
	banned := auth.NewMemoryBannedTokenStore()
	service := auth.NewTokenService(cfg, banned, nil)
	email := mustEmail(t, "test@example.com")

	token, cookie, err := service.Issue(email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("claims carry subject and bounded expiry", func(t *testing.T) {
		claims, err := service.Validate(token)
		require.NoError(t, err)

		assert.Equal(t, "test@example.com", claims.Subject())
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), time.Minute)
		assert.WithinDuration(t, time.Now(), claims.IssuedAt(), time.Minute)
	})

	t.Run("token is HS256 signed with the configured key", func(t *testing.T) {
		parsed, err := jwt.ParseWithClaims(token, &auth.SessionClaims{}, func(tok *jwt.Token) (any, error) {
			assert.Equal(t, jwt.SigningMethodHS256.Alg(), tok.Method.Alg())
			return []byte(cfg.SigningKey), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
	})

	t.Run("cookie attributes match the session contract", func(t *testing.T) {
		require.NotNil(t, cookie)
		assert.Equal(t, "jwt", cookie.Name)
		assert.Equal(t, token, cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, time.Hour, cookie.MaxAge)
		assert.True(t, cookie.HTTPOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, "Lax", cookie.SameSite)
	})
}

func TestTokenService_Validate(t *testing.T) {
	ctx := context.Background()
	cfg := testTokenConfig()
	banned := auth.NewMemoryBannedTokenStore()
	service := auth.NewTokenService(cfg, banned, nil)
	email := mustEmail(t, "test@example.com")

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.Validate("not.a.token")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.Issuer,
				Subject:   email.String(),
				Audience:  jwt.ClaimStrings(cfg.Audience),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
		require.NoError(t, err)

		_, err = service.Validate(forged)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.Issuer,
				Subject:   email.String(),
				Audience:  jwt.ClaimStrings(cfg.Audience),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SigningKey))
		require.NoError(t, err)

		_, err = service.Validate(stale)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "somebody-else",
				Subject:   email.String(),
				Audience:  jwt.ClaimStrings(cfg.Audience),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		offIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SigningKey))
		require.NoError(t, err)

		_, err = service.Validate(offIssuer)
		assert.Error(t, err)
	})

	t.Run("ban check only runs for structurally valid tokens", func(t *testing.T) {
		require.NoError(t, banned.Ban(ctx, "garbage-token", time.Now().Unix()))

		_, err := service.Validate("garbage-token", auth.WithRevocationCheck(ctx))
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrTokenBanned)
	})
}

func TestTokenService_Revoke(t *testing.T) {
	ctx := context.Background()
	cfg := testTokenConfig()
	banned := auth.NewMemoryBannedTokenStore()
	service := auth.NewTokenService(cfg, banned, nil)

	token, _, err := service.Issue(mustEmail(t, "test@example.com"))
	require.NoError(t, err)

	claims, err := service.Validate(token, auth.WithRevocationCheck(ctx))
	require.NoError(t, err)

	require.NoError(t, service.Revoke(ctx, token, claims.ExpiryUnix()))

	t.Run("revoked token fails the revocation check", func(t *testing.T) {
		_, err := service.Validate(token, auth.WithRevocationCheck(ctx))
		assert.ErrorIs(t, err, auth.ErrTokenBanned)
	})

	t.Run("structural validation alone still passes", func(t *testing.T) {
		_, err := service.Validate(token)
		assert.NoError(t, err)
	})

	t.Run("revoking again keeps the ban", func(t *testing.T) {
		require.NoError(t, service.Revoke(ctx, token, claims.ExpiryUnix()))
		_, err := service.Validate(token, auth.WithRevocationCheck(ctx))
		assert.ErrorIs(t, err, auth.ErrTokenBanned)
	})
}
