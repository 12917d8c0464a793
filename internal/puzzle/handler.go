package puzzle

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the puzzle CRUD and scoring endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds the puzzle handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Get returns a puzzle by its path identifier.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.UserContext(), c.Params("puzzleID"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Puzzle not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	blackBoxes := p.BlackBoxes
	if blackBoxes == nil {
		blackBoxes = []int{}
	}
	return c.JSON(fiber.Map{
		"puzzleID":      p.ID,
		"acrossHints":   emptyIfNil(p.Across),
		"downHints":     emptyIfNil(p.Down),
		"blackBoxArray": blackBoxes,
		"status":        p.Status,
	})
}

type submitRequest struct {
	PuzzleID        string            `json:"puzzleID"`
	SubmittedPuzzle map[string]string `json:"submittedPuzzle"`
	TimeRemaining   float64           `json:"timeRemaining"`
	TeamName        string            `json:"teamName"`
	SessionID       string            `json:"sessionID"`
	Email           string            `json:"email"`
}

// Submit scores a submitted grid and records the result.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	_ = c.BodyParser(&req)

	res, err := h.svc.Submit(c.UserContext(), SubmitInput{
		PuzzleID:      req.PuzzleID,
		Grid:          req.SubmittedPuzzle,
		TimeRemaining: req.TimeRemaining,
		TeamName:      req.TeamName,
		SessionID:     req.SessionID,
		Email:         req.Email,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Puzzle not found"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.JSON(fiber.Map{
		"score":           res.Score,
		"correctWords":    res.CorrectWords,
		"totalWords":      res.TotalWords,
		"allWordsCorrect": res.AllWordsCorrect,
		"message":         "Submission successful",
	})
}

func emptyIfNil(hints []Hint) []Hint {
	if hints == nil {
		return []Hint{}
	}
	return hints
}
