package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/isl-games/crossword-api/internal/provider"
)

// Handler exposes the authentication endpoints. Every failure is converted to
// exactly one JSON error body with one status code here at the boundary;
// nothing from the raw provider payload leaks past the extracted message.
type Handler struct {
	svc *Service
}

// NewHandler builds the auth handler around the orchestrator.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials against the provider and issues a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	_ = c.BodyParser(&req)

	res, err := h.svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err, http.StatusUnauthorized)
	}
	return c.JSON(sessionBody(res))
}

type registerRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Register forwards account creation to the provider.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	_ = c.BodyParser(&req)

	res, err := h.svc.Register(c.UserContext(), req.DisplayName, req.Email, req.PhoneNumber, req.Password)
	if err != nil {
		return respondError(c, err, http.StatusBadRequest)
	}
	return c.JSON(ackBody(res))
}

type forgotPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPassword forwards a password reset to the provider.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	_ = c.BodyParser(&req)

	res, err := h.svc.ForgotPassword(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, http.StatusBadRequest)
	}
	return c.JSON(ackBody(res))
}

type otpRequestRequest struct {
	Channel  string `json:"channel"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// RequestOTP asks the provider to deliver a code and returns the challenge.
func (h *Handler) RequestOTP(c *fiber.Ctx) error {
	var req otpRequestRequest
	_ = c.BodyParser(&req)

	res, err := h.svc.RequestOTP(c.UserContext(), req.Channel, req.Phone, req.Email, req.Username)
	if err != nil {
		return respondError(c, err, http.StatusBadRequest)
	}
	return c.JSON(fiber.Map{
		"challenge_id": res.ChallengeID,
		"expires_at":   res.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

type otpVerifyRequest struct {
	ChallengeID string `json:"challenge_id"`
	OTP         string `json:"otp"`
}

// VerifyOTP exchanges a valid challenge plus code for a session token.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req otpVerifyRequest
	_ = c.BodyParser(&req)

	res, err := h.svc.VerifyOTP(c.UserContext(), req.ChallengeID, req.OTP)
	if err != nil {
		return respondError(c, err, http.StatusUnauthorized)
	}
	return c.JSON(sessionBody(res))
}

// Me echoes the identity claims of the presented session token.
func (h *Handler) Me(c *fiber.Ctx) error {
	identity, err := h.svc.Identity(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var email any
	if identity.Email != "" {
		email = identity.Email
	}
	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":       nil,
			"username": email,
		},
		"member": fiber.Map{
			"id":    nil,
			"name":  identity.DisplayName,
			"email": email,
			"phone": identity.Phone,
		},
	})
}

// Logout acknowledges the request. Sessions are stateless, so logging out is
// the client discarding its token; nothing is revoked server-side.
func (h *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func sessionBody(res SessionResult) fiber.Map {
	return fiber.Map{
		"token":      res.Token,
		"expires_at": res.ExpiresAt.UTC().Format(time.RFC3339),
		"user": fiber.Map{
			"id":       nil,
			"username": res.Username,
		},
	}
}

func ackBody(res AckResult) fiber.Map {
	var message any
	if res.Message != "" {
		message = res.Message
	}
	return fiber.Map{"ok": true, "message": message}
}

// respondError maps the failure taxonomy onto HTTP statuses: configuration
// 500, provider unreachable 502, provider refusal rejectStatus, bad input 400,
// bad token 401.
func respondError(c *fiber.Ctx, err error, rejectStatus int) error {
	var (
		validationErr *ValidationError
		configErr     *provider.ConfigError
		gatewayErr    *provider.GatewayError
		rejectionErr  *provider.RejectionError
		tokenErr      *TokenError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Message})
	case errors.As(err, &configErr):
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": configErr.Error()})
	case errors.As(err, &gatewayErr):
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": gatewayErr.Error()})
	case errors.As(err, &rejectionErr):
		return c.Status(rejectStatus).JSON(fiber.Map{"error": rejectionErr.Message})
	case errors.As(err, &tokenErr):
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": tokenErr.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
