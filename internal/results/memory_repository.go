package results

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps results in memory for development and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	results []Result
}

// NewMemoryRepository builds an empty in-memory results store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save appends a result.
func (r *MemoryRepository) Save(_ context.Context, result Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

// ListByEmail returns a player's results ordered by submission time.
func (r *MemoryRepository) ListByEmail(_ context.Context, email string) ([]Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Result
	for _, res := range r.results {
		if res.Email == email {
			out = append(out, res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Totals aggregates per player, ordered by total score descending.
func (r *MemoryRepository) Totals(_ context.Context, todayOnly bool) ([]PlayerTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	byEmail := make(map[string]*PlayerTotal)
	var order []string
	for _, res := range r.results {
		if res.Email == "" {
			continue
		}
		if todayOnly && !res.CreatedAt.UTC().Truncate(24*time.Hour).Equal(today) {
			continue
		}
		total, ok := byEmail[res.Email]
		if !ok {
			total = &PlayerTotal{Email: res.Email}
			byEmail[res.Email] = total
			order = append(order, res.Email)
		}
		total.TotalScore += res.Score
		total.RoundsPlayed++
	}

	out := make([]PlayerTotal, 0, len(order))
	for _, email := range order {
		out = append(out, *byEmail[email])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out, nil
}
