package puzzle

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested puzzle is not in the bank.
var ErrNotFound = errors.New("puzzle not found")

// Repository reads the crossword puzzle bank.
type Repository interface {
	Get(ctx context.Context, id string) (Puzzle, error)
}

// PostgresRepository reads puzzles from the legacy crosswordpuzzlebank table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed puzzle repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches and decodes a puzzle by its identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Puzzle, error) {
	row := r.db.QueryRow(ctx, `SELECT "puzzleID", COALESCE("blackBoxArray", ''), COALESCE("accrossHintArray", ''),
        COALESCE("downHintArray", ''), COALESCE(status, 0), "createdDate"
        FROM crosswordpuzzlebank WHERE "puzzleID" = $1`, id)

	var (
		p          Puzzle
		blackBoxes string
		across     string
		down       string
		createdAt  *time.Time
	)
	if err := row.Scan(&p.ID, &blackBoxes, &across, &down, &p.Status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Puzzle{}, ErrNotFound
		}
		return Puzzle{}, err
	}

	p.BlackBoxes = decodeBlackBoxes(blackBoxes)
	p.Across = decodeHints(across)
	p.Down = decodeHints(down)
	if createdAt != nil {
		p.CreatedAt = createdAt.UTC()
	}
	return p, nil
}
