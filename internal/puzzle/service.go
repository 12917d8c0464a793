package puzzle

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/isl-games/crossword-api/internal/results"
)

// The grid is 9 cells wide: across answers occupy consecutive cell numbers,
// down answers step by the grid width.
const gridWidth = 9

// Words required before the remaining time starts counting as bonus.
const bonusThreshold = 6

// Service scores submissions against the puzzle bank and records results.
type Service struct {
	puzzles Repository
	results results.Repository
	logger  *slog.Logger
}

// NewService builds the puzzle service.
func NewService(puzzles Repository, resultsRepo results.Repository, logger *slog.Logger) *Service {
	return &Service{puzzles: puzzles, results: resultsRepo, logger: logger}
}

// Get fetches a puzzle by identifier.
func (s *Service) Get(ctx context.Context, id string) (Puzzle, error) {
	return s.puzzles.Get(ctx, id)
}

// SubmitInput is a filled grid handed in for scoring. Grid maps cell numbers
// (as strings) to the submitted letters.
type SubmitInput struct {
	PuzzleID      string
	Grid          map[string]string
	TimeRemaining float64
	TeamName      string
	SessionID     string
	Email         string
}

// SubmitResult is the scored outcome of a submission.
type SubmitResult struct {
	Score           float64
	CorrectWords    int
	TotalWords      int
	AllWordsCorrect bool
}

// Submit scores a grid: one point per fully correct word, plus a time bonus of
// 0.1 per remaining second once the bonus threshold is reached. The result is
// persisted best-effort; a storage failure is logged but does not void the score.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (SubmitResult, error) {
	p, err := s.puzzles.Get(ctx, input.PuzzleID)
	if err != nil {
		return SubmitResult{}, err
	}

	var outcome SubmitResult
	for _, hint := range p.Across {
		outcome.TotalWords++
		if wordCorrect(input.Grid, hint, 1) {
			outcome.CorrectWords++
		}
	}
	for _, hint := range p.Down {
		outcome.TotalWords++
		if wordCorrect(input.Grid, hint, gridWidth) {
			outcome.CorrectWords++
		}
	}

	outcome.Score = float64(outcome.CorrectWords)
	if outcome.CorrectWords >= bonusThreshold {
		outcome.Score += input.TimeRemaining * 0.1
	}
	outcome.AllWordsCorrect = outcome.TotalWords > 0 && outcome.CorrectWords == outcome.TotalWords

	teamName := input.TeamName
	if teamName == "" {
		teamName = "Anonymous"
	}
	grid, _ := json.Marshal(input.Grid)

	record := results.Result{
		PuzzleID:  input.PuzzleID,
		TeamName:  teamName,
		Grid:      string(grid),
		Score:     outcome.Score,
		Duration:  strconv.FormatFloat(input.TimeRemaining, 'f', -1, 64),
		Won:       outcome.AllWordsCorrect,
		CreatedAt: time.Now().UTC(),
		Email:     input.Email,
	}
	if err := s.results.Save(ctx, record); err != nil && s.logger != nil {
		s.logger.Error("save puzzle result", "puzzle_id", input.PuzzleID, "team", teamName, "error", err)
	}

	return outcome, nil
}

func wordCorrect(grid map[string]string, hint Hint, step int) bool {
	answer := strings.ToUpper(hint.Answer)
	if answer == "" {
		return false
	}
	for i, want := range []rune(answer) {
		cell := strconv.Itoa(hint.CellID + i*step)
		if !strings.EqualFold(grid[cell], string(want)) {
			return false
		}
	}
	return true
}
