package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Auther is the authentication orchestrator. It owns no state of its
// own; every store is injected and every value it touches is request
// scoped.
type Auther struct {
	users        UserStore
	challenges   TwoFACodeStore
	tokens       TokenService
	sender       CodeSender
	cookieName   string
	cookieSecure bool
	logger       Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users UserStore, challenges TwoFACodeStore, tokens TokenService, opts Config) *Auther {
	return &Auther{
		users:        users,
		challenges:   challenges,
		tokens:       tokens,
		sender:       noopCodeSender{},
		cookieName:   opts.GetCookieName(),
		cookieSecure: opts.GetCookieSecure(),
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithCodeSender configures the delivery channel for 2FA codes.
func (s *Auther) WithCodeSender(sender CodeSender) *Auther {
	s.sender = normalizeCodeSender(sender)
	return s
}

// LoginResult reports a successful login or verify step. Cookie is set
// on the terminal authenticated states; LoginAttemptID only when a
// two factor challenge is pending. The code itself never appears here.
type LoginResult struct {
	State          LoginState
	Token          string
	Cookie         *SessionCookie
	LoginAttemptID string
}

// Signup registers a new account. Parse failures surface as validation
// errors; a taken email as ErrUserAlreadyExists.
func (s *Auther) Signup(ctx context.Context, rawEmail, rawPassword string, requiresTwoFA bool) error {
	email, err := ParseEmail(rawEmail)
	if err != nil {
		return err
	}

	password, err := ParsePassword(rawPassword)
	if err != nil {
		return err
	}

	if _, err := s.users.Get(ctx, email); err == nil {
		return ErrUserAlreadyExists
	}

	user, err := NewUser(email, password, requiresTwoFA)
	if err != nil {
		s.logger.Error("Signup failed to build user", "error", err)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
	}

	// The store re-checks under its write lock, so two concurrent
	// signups racing past the Get above still produce exactly one user.
	if err := s.users.Add(ctx, user); err != nil {
		if goerrors.Is(err, ErrUserAlreadyExists) {
			return ErrUserAlreadyExists
		}
		s.logger.Error("Signup store add error", "error", err)
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store user")
	}

	return nil
}

// Login validates credentials and either issues a session directly or
// opens a two factor challenge. Unknown email and wrong password both
// surface as ErrIncorrectCredentials; callers learn nothing about
// account existence.
func (s *Auther) Login(ctx context.Context, rawEmail, rawPassword string) (*LoginResult, error) {
	flow := newLoginFlow()

	email, err := ParseEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	password, err := ParsePassword(rawPassword)
	if err != nil {
		return nil, err
	}

	if err := s.users.Validate(ctx, email, password); err != nil {
		if goerrors.Is(err, ErrUserNotFound) || goerrors.Is(err, ErrInvalidCredentials) {
			return nil, ErrIncorrectCredentials
		}
		s.logger.Error("Login store validate error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to validate credentials")
	}

	if err := flow.transition(LoginStateCredentialsValidated); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, email)
	if err != nil {
		if goerrors.Is(err, ErrUserNotFound) {
			return nil, ErrIncorrectCredentials
		}
		s.logger.Error("Login store get error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user")
	}

	if !user.RequiresTwoFA {
		return s.issueSession(flow, LoginStateDirectAuthenticated, email)
	}

	return s.openChallenge(ctx, flow, email)
}

func (s *Auther) openChallenge(ctx context.Context, flow *loginFlow, email Email) (*LoginResult, error) {
	attemptID := NewLoginAttemptID()

	code, err := GenerateTwoFACode()
	if err != nil {
		s.logger.Error("Login failed to generate 2FA code", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate 2FA code")
	}

	// Overwrites any pending challenge for this email; the previous
	// attempt id becomes permanently unverifiable.
	if err := s.challenges.Put(ctx, email, attemptID, code); err != nil {
		s.logger.Error("Login failed to store 2FA challenge", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store 2FA challenge")
	}

	if err := s.sender.SendCode(ctx, email, code); err != nil {
		s.logger.Error("Login failed to deliver 2FA code", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to deliver 2FA code")
	}

	if err := flow.transition(LoginStateTwoFAPending); err != nil {
		return nil, err
	}

	return &LoginResult{
		State:          flow.current(),
		LoginAttemptID: attemptID.String(),
	}, nil
}

// VerifyTwoFA consumes a pending challenge. Absent, overwritten and
// mismatched challenges are indistinguishable to the caller.
func (s *Auther) VerifyTwoFA(ctx context.Context, rawEmail, rawLoginAttemptID, rawCode string) (*LoginResult, error) {
	flow := resumedLoginFlow()

	email, err := ParseEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	// Empty fields are reported as validation failures; anything
	// non-empty but malformed could only come from guessing, so it
	// collapses into the generic rejection below.
	if strings.TrimSpace(rawLoginAttemptID) == "" {
		return nil, ErrLoginAttemptIDInvalid
	}
	if strings.TrimSpace(rawCode) == "" {
		return nil, ErrTwoFACodeInvalid
	}

	attemptID, err := ParseLoginAttemptID(rawLoginAttemptID)
	if err != nil {
		return nil, s.rejectChallenge(flow)
	}

	code, err := ParseTwoFACode(rawCode)
	if err != nil {
		return nil, s.rejectChallenge(flow)
	}

	storedID, storedCode, err := s.challenges.Get(ctx, email)
	if err != nil {
		return nil, s.rejectChallenge(flow)
	}

	if !storedID.Equal(attemptID) || !storedCode.Equal(code) {
		return nil, s.rejectChallenge(flow)
	}

	// The read access above was released when Get returned; Remove
	// takes its own write acquisition. The challenge must be gone
	// before a token is issued so the exact request cannot replay.
	if err := s.challenges.Remove(ctx, email); err != nil {
		s.logger.Error("VerifyTwoFA failed to consume challenge", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to consume 2FA challenge")
	}

	return s.issueSession(flow, LoginStateTwoFAVerified, email)
}

func (s *Auther) rejectChallenge(flow *loginFlow) error {
	if err := flow.transition(LoginStateTwoFARejected); err != nil {
		return err
	}
	return ErrIncorrectCredentials
}

func (s *Auther) issueSession(flow *loginFlow, target LoginState, email Email) (*LoginResult, error) {
	token, cookie, err := s.tokens.Issue(email)
	if err != nil {
		s.logger.Error("failed to issue session token", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue session token")
	}

	if err := flow.transition(target); err != nil {
		return nil, err
	}

	return &LoginResult{
		State:  flow.current(),
		Token:  token,
		Cookie: cookie,
	}, nil
}

// Logout revokes the presented token and tells the caller to clear the
// session cookie. A missing token is distinct from an invalid one; an
// invalid token leaves the cookie untouched.
func (s *Auther) Logout(ctx context.Context, token string) (*SessionCookie, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.tokens.Validate(token, WithRevocationCheck(ctx))
	if err != nil {
		s.logger.Debug("Logout token validation failed", "error", err)
		return nil, ErrInvalidToken
	}

	if err := s.tokens.Revoke(ctx, token, claims.ExpiryUnix()); err != nil {
		s.logger.Error("Logout failed to revoke token", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to revoke session token")
	}

	return clearSessionCookie(s.cookieName, s.cookieSecure), nil
}

// VerifyToken checks structural validity and ban status. No state
// changes; success or the failure kind is the whole answer.
func (s *Auther) VerifyToken(ctx context.Context, token string) error {
	if _, err := s.tokens.Validate(token, WithRevocationCheck(ctx)); err != nil {
		return ErrInvalidToken
	}
	return nil
}
