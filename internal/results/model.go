package results

import "time"

// Result is one scored puzzle submission.
type Result struct {
	PuzzleID  string
	TeamName  string
	Grid      string // submitted grid, stored as JSON
	Score     float64
	Duration  string
	Won       bool
	CreatedAt time.Time
	Email     string
}

// PlayerTotal aggregates a player's submissions.
type PlayerTotal struct {
	Email        string
	TotalScore   float64
	RoundsPlayed int
}
