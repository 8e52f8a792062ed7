// Package auth implements an email/password authentication service with
// optional two factor login: validated value objects, in-memory stores,
// signed session tokens, and the orchestration between them.
//
// Value objects:
//   - Email, Password, LoginAttemptID, and TwoFACode are constructed only
//     through their Parse functions, so anything the orchestrator touches
//     already satisfied its syntax rules. Parse failures surface as
//     validation class sentinels callers can branch on.
//
// Stores:
//   - UserStore, BannedTokenStore, and TwoFACodeStore are the three state
//     owners. The Memory* implementations guard each map with its own
//     RWMutex; no operation ever holds two store locks at once.
//
// Sessions:
//   - TokenService issues HS256 signed claims bound to the account email
//     and validates them with optional revocation checks against the
//     banned token set. Logout bans a token for the process lifetime.
//
// Orchestration:
//   - Auther composes the stores and token service behind the
//     Authenticator interface. Login either authenticates directly or
//     opens a two factor challenge delivered through a CodeSender;
//     VerifyTwoFA consumes the challenge exactly once. HTTPController
//     exposes the five operations as JSON endpoints over fiber.
package auth
