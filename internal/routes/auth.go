package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/isl-games/crossword-api/internal/auth"
)

// RegisterAuthRoutes wires the authentication endpoints. Paths match the
// original API contract, including the identity echo on the root path.
func RegisterAuthRoutes(app *fiber.App, h *auth.Handler) {
	app.Get("/", h.Me)

	api := app.Group("/api")
	api.Post("/login", h.Login)
	api.Post("/register", h.Register)
	api.Post("/forgot-password", h.ForgotPassword)
	api.Post("/otp/request", h.RequestOTP)
	api.Post("/otp/verify", h.VerifyOTP)
	api.Post("/logout", h.Logout)
}
