package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// LoginAttemptID identifies one login-with-2FA attempt. Compared for
// equality only; a fresh random UUID per attempt.
type LoginAttemptID struct {
	value string
}

// ParseLoginAttemptID requires raw to be syntactically valid UUID.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return LoginAttemptID{}, ErrLoginAttemptIDInvalid
	}
	return LoginAttemptID{value: id.String()}, nil
}

// NewLoginAttemptID generates a fresh random attempt id.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{value: uuid.NewString()}
}

func (l LoginAttemptID) String() string {
	return l.value
}

func (l LoginAttemptID) Equal(other LoginAttemptID) bool {
	return l.value == other.value
}

// TwoFACode is a 6 ASCII digit one-time code.
type TwoFACode struct {
	value string
}

// ParseTwoFACode requires exactly 6 ASCII digits.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	if len(raw) != 6 {
		return TwoFACode{}, ErrTwoFACodeInvalid
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return TwoFACode{}, ErrTwoFACodeInvalid
		}
	}
	return TwoFACode{value: raw}, nil
}

// GenerateTwoFACode produces a uniformly random code in
// [100000, 999999] so it always renders as 6 digits.
func GenerateTwoFACode() (TwoFACode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return TwoFACode{}, err
	}
	return TwoFACode{value: fmt.Sprintf("%06d", n.Int64()+100000)}, nil
}

func (c TwoFACode) String() string {
	return c.value
}

func (c TwoFACode) Equal(other TwoFACode) bool {
	return c.value == other.value
}
