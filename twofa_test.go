package auth_test

import (
	"testing"

	auth "github.com/goliatone/auth-service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptID(t *testing.T) {
	t.Run("parses a valid UUID", func(t *testing.T) {
		raw := uuid.NewString()
		id, err := auth.ParseLoginAttemptID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("rejects non UUID input", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-uuid", "12345", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"} {
			_, err := auth.ParseLoginAttemptID(raw)
			assert.ErrorIs(t, err, auth.ErrLoginAttemptIDInvalid, "input %q", raw)
		}
	})

	t.Run("generated ids are parseable and distinct", func(t *testing.T) {
		a := auth.NewLoginAttemptID()
		b := auth.NewLoginAttemptID()

		_, err := auth.ParseLoginAttemptID(a.String())
		require.NoError(t, err)

		assert.False(t, a.Equal(b))
	})
}

func TestTwoFACode(t *testing.T) {
	t.Run("parses exactly six digits", func(t *testing.T) {
		code, err := auth.ParseTwoFACode("123456")
		require.NoError(t, err)
		assert.Equal(t, "123456", code.String())
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, raw := range []string{"", "12345", "1234567", "12345a", "12 456", "１２３４５６"} {
			_, err := auth.ParseTwoFACode(raw)
			assert.ErrorIs(t, err, auth.ErrTwoFACodeInvalid, "input %q", raw)
		}
	})

	t.Run("generated codes always reparse", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := auth.GenerateTwoFACode()
			require.NoError(t, err)
			require.Len(t, code.String(), 6)

			parsed, err := auth.ParseTwoFACode(code.String())
			require.NoError(t, err)
			assert.True(t, code.Equal(parsed))
		}
	})
}
