package puzzle

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory puzzle bank for development and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	puzzles map[string]Puzzle
}

// NewMemoryRepository builds an empty in-memory puzzle bank.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{puzzles: make(map[string]Puzzle)}
}

// Seed stores a puzzle in the bank.
func (r *MemoryRepository) Seed(p Puzzle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.puzzles[p.ID] = p
}

// Get fetches a puzzle by identifier.
func (r *MemoryRepository) Get(_ context.Context, id string) (Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.puzzles[id]
	if !ok {
		return Puzzle{}, ErrNotFound
	}
	return p, nil
}
