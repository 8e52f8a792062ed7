package auth_test

import (
	"context"
	"sync"
	"testing"

	auth "github.com/goliatone/auth-service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, email, password string, twoFA bool) auth.User {
	t.Helper()

	e, err := auth.ParseEmail(email)
	require.NoError(t, err)

	p, err := auth.ParsePassword(password)
	require.NoError(t, err)

	user, err := auth.NewUser(e, p, twoFA)
	require.NoError(t, err)

	return user
}

func mustEmail(t *testing.T, raw string) auth.Email {
	t.Helper()

	email, err := auth.ParseEmail(raw)
	require.NoError(t, err)
	return email
}

func mustPassword(t *testing.T, raw string) auth.Password {
	t.Helper()

	password, err := auth.ParsePassword(raw)
	require.NoError(t, err)
	return password
}

func TestMemoryUserStore_Add(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryUserStore()
	user := mustUser(t, "test@example.com", "Password123!", false)

	require.NoError(t, store.Add(ctx, user))

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := store.Add(ctx, user)
		assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
	})

	t.Run("concurrent adds for one email admit exactly one", func(t *testing.T) {
		racing := auth.NewMemoryUserStore()
		candidate := mustUser(t, "race@example.com", "Password123!", false)

		var wg sync.WaitGroup
		errs := make([]error, 16)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = racing.Add(ctx, candidate)
			}(i)
		}
		wg.Wait()

		accepted := 0
		for _, err := range errs {
			if err == nil {
				accepted++
			} else {
				assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
			}
		}
		assert.Equal(t, 1, accepted)
	})
}

func TestMemoryUserStore_Get(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryUserStore()

	t.Run("missing user", func(t *testing.T) {
		_, err := store.Get(ctx, mustEmail(t, "nobody@example.com"))
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("existing user", func(t *testing.T) {
		user := mustUser(t, "test@example.com", "Password123!", true)
		require.NoError(t, store.Add(ctx, user))

		got, err := store.Get(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", got.Email.String())
		assert.True(t, got.RequiresTwoFA)
	})
}

func TestMemoryUserStore_Validate(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryUserStore()
	user := mustUser(t, "test@example.com", "Password123!", false)
	require.NoError(t, store.Add(ctx, user))

	t.Run("valid credentials", func(t *testing.T) {
		err := store.Validate(ctx, user.Email, mustPassword(t, "Password123!"))
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		err := store.Validate(ctx, user.Email, mustPassword(t, "WrongPassword1!"))
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := store.Validate(ctx, mustEmail(t, "nobody@example.com"), mustPassword(t, "Password123!"))
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}
