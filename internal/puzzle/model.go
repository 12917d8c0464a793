package puzzle

import "time"

// Hint is a single crossword clue with its answer laid out from a start cell.
type Hint struct {
	CellID int    `json:"cellID"`
	Answer string `json:"answer"`
	Clue   string `json:"hint,omitempty"`
}

// Puzzle is one entry of the crossword puzzle bank.
type Puzzle struct {
	ID         string
	BlackBoxes []int
	Across     []Hint
	Down       []Hint
	Status     int
	CreatedAt  time.Time
}
