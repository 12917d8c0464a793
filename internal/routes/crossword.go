package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/isl-games/crossword-api/internal/middleware"
	"github.com/isl-games/crossword-api/internal/puzzle"
	"github.com/isl-games/crossword-api/internal/results"
)

// RegisterCrosswordRoutes wires the puzzle and leaderboard endpoints.
func RegisterCrosswordRoutes(app *fiber.App, puzzles *puzzle.Handler, stats *results.Handler, d Deps) {
	group := app.Group("/api/crossword")

	group.Get("/puzzle/:puzzleID", puzzles.Get)
	group.Post("/submit", middleware.SubmitOnce(d.Cache, d.Cfg.SubmitGuardTTL, d.Logger), puzzles.Submit)

	group.Get("/leaderboard", stats.Leaderboard)
	group.Get("/leaderboard/search", stats.Search)
	group.Get("/analytics", stats.Analytics)
	group.Get("/game-history", stats.History)
}
