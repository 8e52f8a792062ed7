package auth

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Email is a validated, immutable email address. The zero value is not
// a valid Email; construct one through ParseEmail.
type Email struct {
	value string
}

// ParseEmail validates raw and returns its canonical Email. The rules
// are intentionally narrow: non-empty after trimming, exactly one "@"
// with non-empty local and domain parts, and a "." in the domain.
func ParseEmail(raw string) (Email, error) {
	if err := validation.Validate(strings.TrimSpace(raw), validation.Required); err != nil {
		return Email{}, ErrEmailEmpty
	}

	parts := strings.Split(raw, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Email{}, ErrEmailInvalidFormat
	}

	if !strings.Contains(parts[1], ".") {
		return Email{}, ErrEmailInvalidFormat
	}

	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}

// IsZero reports whether e was never parsed.
func (e Email) IsZero() bool {
	return e.value == ""
}
