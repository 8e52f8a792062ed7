package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

const passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// Password is a raw password that satisfied every strength rule. It is
// immutable and only ever compared through its bcrypt hash.
type Password struct {
	value string
}

// ParsePassword runs the strength rules in a fixed order and reports
// the first violation: empty, too short (<8), too long (>128), missing
// uppercase, missing lowercase, missing digit, missing special char.
func ParsePassword(raw string) (Password, error) {
	if strings.TrimSpace(raw) == "" {
		return Password{}, ErrPasswordEmpty
	}

	if len(raw) < 8 {
		return Password{}, ErrPasswordTooShort
	}

	if len(raw) > 128 {
		return Password{}, ErrPasswordTooLong
	}

	if !strings.ContainsFunc(raw, func(c rune) bool { return c >= 'A' && c <= 'Z' }) {
		return Password{}, ErrPasswordMissingUppercase
	}

	if !strings.ContainsFunc(raw, func(c rune) bool { return c >= 'a' && c <= 'z' }) {
		return Password{}, ErrPasswordMissingLowercase
	}

	if !strings.ContainsFunc(raw, func(c rune) bool { return c >= '0' && c <= '9' }) {
		return Password{}, ErrPasswordMissingDigit
	}

	if !strings.ContainsAny(raw, passwordSpecialChars) {
		return Password{}, ErrPasswordMissingSpecialChar
	}

	return Password{value: raw}, nil
}

func (p Password) String() string {
	return p.value
}

// Hash generates a bcrypt hash of the password.
func (p Password) Hash() (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(p.value), bcrypt.DefaultCost)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	return string(h), nil
}

// ComparePasswordAndHash validates the given cleartext password
// against a stored bcrypt hash.
func ComparePasswordAndHash(password Password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password.value)); err != nil {
		if goerrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare password hash")
	}
	return nil
}
