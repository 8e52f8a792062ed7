package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeEmailEmpty          = "EMAIL_EMPTY"
	textCodeEmailInvalid        = "EMAIL_INVALID_FORMAT"
	textCodePasswordEmpty       = "PASSWORD_EMPTY"
	textCodePasswordTooShort    = "PASSWORD_TOO_SHORT"
	textCodePasswordTooLong     = "PASSWORD_TOO_LONG"
	textCodePasswordNoUppercase = "PASSWORD_MISSING_UPPERCASE"
	textCodePasswordNoLowercase = "PASSWORD_MISSING_LOWERCASE"
	textCodePasswordNoDigit     = "PASSWORD_MISSING_DIGIT"
	textCodePasswordNoSpecial   = "PASSWORD_MISSING_SPECIAL_CHAR"
	textCodeAttemptIDInvalid    = "LOGIN_ATTEMPT_ID_INVALID"
	textCodeTwoFACodeInvalid    = "TWO_FA_CODE_INVALID"
	textCodeUserExists          = "USER_ALREADY_EXISTS"
	textCodeUserNotFound        = "USER_NOT_FOUND"
	textCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	textCodeIncorrectCreds      = "INCORRECT_CREDENTIALS"
	textCodeChallengeNotFound   = "TWO_FA_CHALLENGE_NOT_FOUND"
	textCodeMissingToken        = "MISSING_TOKEN"
	textCodeInvalidToken        = "INVALID_TOKEN"
	textCodeTokenExpired        = "TOKEN_EXPIRED"
	textCodeTokenMalformed      = "TOKEN_MALFORMED"
	textCodeTokenBanned         = "TOKEN_BANNED"
)

// Value object parse failures. Each password rule gets its own sentinel
// so callers can report the first violated rule without aggregation.
var (
	ErrEmailEmpty = goerrors.New("email must not be empty", goerrors.CategoryValidation).
			WithTextCode(textCodeEmailEmpty).
			WithCode(goerrors.CodeBadRequest)

	ErrEmailInvalidFormat = goerrors.New("email has an invalid format", goerrors.CategoryValidation).
				WithTextCode(textCodeEmailInvalid).
				WithCode(goerrors.CodeBadRequest)

	ErrPasswordEmpty = goerrors.New("password must not be empty", goerrors.CategoryValidation).
				WithTextCode(textCodePasswordEmpty).
				WithCode(goerrors.CodeBadRequest)

	ErrPasswordTooShort = goerrors.New("password must be at least 8 characters", goerrors.CategoryValidation).
				WithTextCode(textCodePasswordTooShort).
				WithCode(goerrors.CodeBadRequest)

	ErrPasswordTooLong = goerrors.New("password must be at most 128 characters", goerrors.CategoryValidation).
				WithTextCode(textCodePasswordTooLong).
				WithCode(goerrors.CodeBadRequest)

	ErrPasswordMissingUppercase = goerrors.New("password needs an uppercase letter", goerrors.CategoryValidation).
					WithTextCode(textCodePasswordNoUppercase).
					WithCode(goerrors.CodeBadRequest)

	ErrPasswordMissingLowercase = goerrors.New("password needs a lowercase letter", goerrors.CategoryValidation).
					WithTextCode(textCodePasswordNoLowercase).
					WithCode(goerrors.CodeBadRequest)

	ErrPasswordMissingDigit = goerrors.New("password needs a digit", goerrors.CategoryValidation).
				WithTextCode(textCodePasswordNoDigit).
				WithCode(goerrors.CodeBadRequest)

	ErrPasswordMissingSpecialChar = goerrors.New("password needs a special character", goerrors.CategoryValidation).
					WithTextCode(textCodePasswordNoSpecial).
					WithCode(goerrors.CodeBadRequest)

	ErrLoginAttemptIDInvalid = goerrors.New("login attempt id is not a valid UUID", goerrors.CategoryValidation).
					WithTextCode(textCodeAttemptIDInvalid).
					WithCode(goerrors.CodeBadRequest)

	ErrTwoFACodeInvalid = goerrors.New("two factor code must be 6 digits", goerrors.CategoryValidation).
				WithTextCode(textCodeTwoFACodeInvalid).
				WithCode(goerrors.CodeBadRequest)
)

// Domain rejections surfaced by stores and the authenticator.
var (
	ErrUserAlreadyExists = goerrors.New("user already exists", goerrors.CategoryConflict).
				WithTextCode(textCodeUserExists).
				WithCode(goerrors.CodeConflict)

	ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
			WithTextCode(textCodeUserNotFound).
			WithCode(goerrors.CodeNotFound)

	ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
				WithTextCode(textCodeInvalidCredentials).
				WithCode(goerrors.CodeUnauthorized)

	// ErrIncorrectCredentials is the single externally visible rejection
	// for login and 2FA verification. UserNotFound and InvalidCredentials
	// both collapse into it so responses never reveal account existence.
	ErrIncorrectCredentials = goerrors.New("incorrect credentials", goerrors.CategoryAuth).
				WithTextCode(textCodeIncorrectCreds).
				WithCode(goerrors.CodeUnauthorized)

	ErrChallengeNotFound = goerrors.New("no pending two factor challenge", goerrors.CategoryNotFound).
				WithTextCode(textCodeChallengeNotFound).
				WithCode(goerrors.CodeNotFound)
)

// Token failures. Internally distinguishable, collapsed to a generic
// unauthorized response at the HTTP boundary.
var (
	ErrMissingToken = goerrors.New("missing session token", goerrors.CategoryAuth).
			WithTextCode(textCodeMissingToken).
			WithCode(goerrors.CodeBadRequest)

	ErrInvalidToken = goerrors.New("invalid session token", goerrors.CategoryAuth).
			WithTextCode(textCodeInvalidToken).
			WithCode(goerrors.CodeUnauthorized)

	ErrTokenExpired = goerrors.New("session token expired", goerrors.CategoryAuth).
			WithTextCode(textCodeTokenExpired).
			WithCode(goerrors.CodeUnauthorized)

	ErrTokenMalformed = goerrors.New("session token malformed", goerrors.CategoryAuth).
				WithTextCode(textCodeTokenMalformed).
				WithCode(goerrors.CodeUnauthorized)

	ErrTokenBanned = goerrors.New("session token revoked", goerrors.CategoryAuth).
			WithTextCode(textCodeTokenBanned).
			WithCode(goerrors.CodeUnauthorized)
)

// IsValidationError reports whether err belongs to the validation class
// (malformed email/password/code syntax).
func IsValidationError(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryValidation
}

// IsTokenError reports whether err is one of the token failure kinds.
func IsTokenError(err error) bool {
	return goerrors.Is(err, ErrInvalidToken) ||
		goerrors.Is(err, ErrTokenExpired) ||
		goerrors.Is(err, ErrTokenMalformed) ||
		goerrors.Is(err, ErrTokenBanned)
}
