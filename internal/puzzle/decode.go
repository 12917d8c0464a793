package puzzle

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The puzzle bank predates this service and its array columns are stored as
// text with inconsistent quoting: proper JSON, single-quoted pseudo-JSON, and
// for the blackbox column sometimes a bare comma-separated list. Decoding is
// lenient and drops what it cannot understand instead of failing the puzzle.

type rawHint struct {
	CellID json.Number `json:"cellID"`
	Answer string      `json:"answer"`
	Clue   string      `json:"hint"`
}

func decodeHints(raw string) []Hint {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var parsed []rawHint
	if err := json.Unmarshal([]byte(cleanLegacyJSON(raw)), &parsed); err != nil {
		return nil
	}

	hints := make([]Hint, 0, len(parsed))
	for _, h := range parsed {
		if h.Answer == "" || h.CellID == "" {
			continue
		}
		cell, err := strconv.Atoi(strings.TrimSpace(h.CellID.String()))
		if err != nil {
			continue
		}
		hints = append(hints, Hint{CellID: cell, Answer: h.Answer, Clue: h.Clue})
	}
	return hints
}

func decodeBlackBoxes(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var cells []int
	if err := json.Unmarshal([]byte(raw), &cells); err == nil {
		return cells
	}

	// Fallback for legacy comma-separated values.
	for _, part := range strings.Split(raw, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			cells = append(cells, n)
		}
	}
	return cells
}

// cleanLegacyJSON rewrites single-quoted pseudo-JSON into real JSON. Only
// applied when the payload looks single-quoted, so apostrophes in properly
// stored clues stay intact.
func cleanLegacyJSON(raw string) string {
	if strings.HasPrefix(raw, "'") || strings.Contains(raw, "{'") {
		return strings.ReplaceAll(raw, "'", `"`)
	}
	return raw
}
