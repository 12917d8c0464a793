package results

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes leaderboard, analytics and history endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds the results handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Leaderboard returns the ranked top players, optionally filtered to today.
func (h *Handler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.svc.Leaderboard(c.UserContext(), todayFilter(c))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	return c.JSON(entries)
}

// Search finds one player's ranked entry by email.
func (h *Handler) Search(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email parameter is required"})
	}

	entry, err := h.svc.Search(c.UserContext(), email, todayFilter(c))
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Player not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(entry)
}

// Analytics returns one player's aggregate statistics.
func (h *Handler) Analytics(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email parameter is required"})
	}

	stats, err := h.svc.Analytics(c.UserContext(), email)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(stats)
}

// History returns one player's full game history.
func (h *Handler) History(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email parameter is required"})
	}

	games, err := h.svc.History(c.UserContext(), email)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	if games == nil {
		games = []GameRecord{}
	}
	return c.JSON(games)
}

func todayFilter(c *fiber.Ctx) bool {
	return c.Query("filter", "overall") == "today"
}
