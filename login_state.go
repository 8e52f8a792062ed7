package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const textCodeInvalidLoginTransition = "INVALID_LOGIN_STATE_TRANSITION"

// ErrInvalidLoginTransition is returned when a login flow attempts a
// step its current state does not allow.
var ErrInvalidLoginTransition = goerrors.New("invalid login state transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidLoginTransition).
	WithCode(goerrors.CodeBadRequest)

// LoginState is one stage of the login/verify flow.
type LoginState string

const (
	// LoginStateStart is the initial state of every attempt.
	LoginStateStart LoginState = "start"
	// LoginStateCredentialsValidated means email and password checked out.
	LoginStateCredentialsValidated LoginState = "credentials_validated"
	// LoginStateDirectAuthenticated is terminal: session issued, no 2FA.
	LoginStateDirectAuthenticated LoginState = "direct_authenticated"
	// LoginStateTwoFAPending means a challenge was issued and awaits a code.
	LoginStateTwoFAPending LoginState = "two_fa_pending"
	// LoginStateTwoFAVerified is terminal: challenge consumed, session issued.
	LoginStateTwoFAVerified LoginState = "two_fa_verified"
	// LoginStateTwoFARejected is terminal: challenge absent or mismatched.
	LoginStateTwoFARejected LoginState = "two_fa_rejected"
)

var loginTransitions = map[LoginState]map[LoginState]struct{}{
	LoginStateStart: {
		LoginStateCredentialsValidated: {},
	},
	LoginStateCredentialsValidated: {
		LoginStateDirectAuthenticated: {},
		LoginStateTwoFAPending:        {},
	},
	LoginStateTwoFAPending: {
		LoginStateTwoFAVerified: {},
		LoginStateTwoFARejected: {},
	},
}

// loginFlow tracks where a single request-scoped attempt stands. It
// owns no store state; the authenticator advances it as the operation
// progresses and every invalid hop is a programming error surfaced as
// ErrInvalidLoginTransition.
type loginFlow struct {
	state LoginState
}

func newLoginFlow() *loginFlow {
	return &loginFlow{state: LoginStateStart}
}

// resumedLoginFlow starts a flow at the 2FA pending state, for the
// verify step that arrives on a later request.
func resumedLoginFlow() *loginFlow {
	return &loginFlow{state: LoginStateTwoFAPending}
}

func (f *loginFlow) transition(target LoginState) error {
	if allowed, ok := loginTransitions[f.state]; ok {
		if _, exists := allowed[target]; exists {
			f.state = target
			return nil
		}
	}

	return ErrInvalidLoginTransition.WithMetadata(map[string]any{
		"from": f.state,
		"to":   target,
	})
}

// Terminal reports whether the flow reached a final state.
func (f *loginFlow) Terminal() bool {
	_, hasExits := loginTransitions[f.state]
	return !hasExits
}

func (f *loginFlow) current() LoginState {
	return f.state
}
