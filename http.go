package auth

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// Response messages are deliberately flat: login and 2FA verification
// answer with the same wording whether the email was unknown or the
// password wrong.
const (
	msgUserCreated          = "User created successfully!"
	msgTwoFARequired        = "2FA required"
	msgInvalidCredentials   = "Invalid credentials"
	msgIncorrectCredentials = "Incorrect credentials"
	msgUserAlreadyExists    = "User already exists"
	msgMissingToken         = "Missing auth token"
	msgInvalidToken         = "Invalid auth token"
	msgUnexpectedError      = "Unexpected error"
)

// HTTPController exposes the authenticator over JSON endpoints. It is
// a thin boundary: parse, delegate, map the error taxonomy to status
// codes, manage the session cookie.
type HTTPController struct {
	auth       Authenticator
	cookieName string
	logger     Logger
}

func NewHTTPController(auther Authenticator, cfg Config) *HTTPController {
	return &HTTPController{
		auth:       auther,
		cookieName: cfg.GetCookieName(),
		logger:     defLogger{},
	}
}

func (h *HTTPController) WithLogger(logger Logger) *HTTPController {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// RegisterRoutes mounts the five auth endpoints.
func (h *HTTPController) RegisterRoutes(app *fiber.App) {
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	app.Post("/verify-2fa", h.VerifyTwoFA)
	app.Post("/logout", h.Logout)
	app.Post("/verify-token", h.VerifyToken)
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// SignupPayload is the registration request body.
type SignupPayload struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	RequiresTwoFA bool   `json:"requires2FA"`
}

// Validate will validate the payload
func (r SignupPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *HTTPController) Signup(c *fiber.Ctx) error {
	payload := new(SignupPayload)

	if err := c.BodyParser(payload); err != nil {
		h.logger.Debug("signup parse payload", "error", err)
		return h.badPayload(c)
	}

	if err := payload.Validate(); err != nil {
		return h.badPayload(c)
	}

	if err := h.auth.Signup(c.Context(), payload.Email, payload.Password, payload.RequiresTwoFA); err != nil {
		return h.renderError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(messageResponse{Message: msgUserCreated})
}

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type twoFARequiredResponse struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

func (h *HTTPController) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		h.logger.Debug("login parse payload", "error", err)
		return h.badPayload(c)
	}

	if err := payload.Validate(); err != nil {
		return h.badPayload(c)
	}

	result, err := h.auth.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return h.renderError(c, err)
	}

	if result.State == LoginStateTwoFAPending {
		return c.Status(http.StatusPartialContent).JSON(twoFARequiredResponse{
			Message:        msgTwoFARequired,
			LoginAttemptID: result.LoginAttemptID,
		})
	}

	h.setCookie(c, result.Cookie)
	return c.SendStatus(http.StatusOK)
}

// VerifyTwoFAPayload is the challenge verification request body.
type VerifyTwoFAPayload struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	TwoFACode      string `json:"2FACode"`
}

// Validate will validate the payload
func (r VerifyTwoFAPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.LoginAttemptID, validation.Required),
		validation.Field(&r.TwoFACode, validation.Required),
	)
}

func (h *HTTPController) VerifyTwoFA(c *fiber.Ctx) error {
	payload := new(VerifyTwoFAPayload)

	if err := c.BodyParser(payload); err != nil {
		h.logger.Debug("verify-2fa parse payload", "error", err)
		return h.badPayload(c)
	}

	if err := payload.Validate(); err != nil {
		return h.badPayload(c)
	}

	result, err := h.auth.VerifyTwoFA(c.Context(), payload.Email, payload.LoginAttemptID, payload.TwoFACode)
	if err != nil {
		return h.renderError(c, err)
	}

	h.setCookie(c, result.Cookie)
	return c.SendStatus(http.StatusOK)
}

func (h *HTTPController) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	if token == "" {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Error: msgMissingToken})
	}

	cookie, err := h.auth.Logout(c.Context(), token)
	if err != nil {
		// The cookie stays untouched on an invalid token.
		return h.renderError(c, err)
	}

	h.setCookie(c, cookie)
	return c.SendStatus(http.StatusOK)
}

// VerifyTokenPayload is the token verification request body.
type VerifyTokenPayload struct {
	Token string `json:"token"`
}

// Validate will validate the payload
func (r VerifyTokenPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

func (h *HTTPController) VerifyToken(c *fiber.Ctx) error {
	payload := new(VerifyTokenPayload)

	if err := c.BodyParser(payload); err != nil {
		h.logger.Debug("verify-token parse payload", "error", err)
		return h.badPayload(c)
	}

	if err := payload.Validate(); err != nil {
		return h.badPayload(c)
	}

	if err := h.auth.VerifyToken(c.Context(), payload.Token); err != nil {
		return h.renderError(c, err)
	}

	return c.SendStatus(http.StatusOK)
}

func (h *HTTPController) badPayload(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse{Error: msgInvalidCredentials})
}

func (h *HTTPController) setCookie(c *fiber.Ctx, cookie *SessionCookie) {
	if cookie == nil {
		return
	}

	fc := &fiber.Cookie{
		Name:     cookie.Name,
		Value:    cookie.Value,
		Path:     cookie.Path,
		HTTPOnly: cookie.HTTPOnly,
		Secure:   cookie.Secure,
		SameSite: cookie.SameSite,
	}

	if cookie.MaxAge >= 0 {
		fc.MaxAge = int(cookie.MaxAge.Seconds())
	} else {
		// A negative Max-Age is dropped during serialization, so
		// clearing cookies carry an explicit past Expires instead.
		fc.Expires = time.Now().Add(cookie.MaxAge)
	}

	c.Cookie(fc)
}

// renderError maps the error taxonomy onto the wire. Validation and
// domain kinds keep their shape; everything else collapses to a
// generic server error so internals never leak.
func (h *HTTPController) renderError(c *fiber.Ctx, err error) error {
	switch {
	case IsValidationError(err):
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Error: msgInvalidCredentials})
	case goerrors.Is(err, ErrUserAlreadyExists):
		return c.Status(http.StatusConflict).JSON(errorResponse{Error: msgUserAlreadyExists})
	case goerrors.Is(err, ErrIncorrectCredentials):
		return c.Status(http.StatusUnauthorized).JSON(errorResponse{Error: msgIncorrectCredentials})
	case goerrors.Is(err, ErrMissingToken):
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Error: msgMissingToken})
	case IsTokenError(err):
		return c.Status(http.StatusUnauthorized).JSON(errorResponse{Error: msgInvalidToken})
	default:
		h.logger.Error("unexpected error handling request", "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(errorResponse{Error: msgUnexpectedError})
	}
}
