package results

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists and aggregates puzzle results.
type Repository interface {
	Save(ctx context.Context, result Result) error
	// ListByEmail returns a player's results ordered by submission time.
	ListByEmail(ctx context.Context, email string) ([]Result, error)
	// Totals returns per-player aggregates ordered by total score descending,
	// excluding rows without an email. With todayOnly only results submitted
	// today count.
	Totals(ctx context.Context, todayOnly bool) ([]PlayerTotal, error)
}

// PostgresRepository stores results in the legacy crosswordpuzzleresults
// table, where the score is a varchar column.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed results repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save inserts a result row.
func (r *PostgresRepository) Save(ctx context.Context, result Result) error {
	status := 0
	if result.Won {
		status = 1
	}
	_, err := r.db.Exec(ctx, `INSERT INTO crosswordpuzzleresults
        ("puzzleID", "riderID", "submittedPuzzle", "gameScore", duration, status, "createdDate", "Email")
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		result.PuzzleID, result.TeamName, result.Grid,
		strconv.FormatFloat(result.Score, 'f', -1, 64),
		result.Duration, status, result.CreatedAt.UTC(), result.Email)
	return err
}

// ListByEmail fetches all results for one player ordered by submission time.
func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]Result, error) {
	rows, err := r.db.Query(ctx, `SELECT COALESCE("puzzleID", ''), COALESCE("riderID", ''),
        COALESCE("submittedPuzzle", ''), COALESCE("gameScore", '0'), COALESCE(duration, '0'),
        COALESCE(status, 0), "createdDate", COALESCE("Email", '')
        FROM crosswordpuzzleresults WHERE "Email" = $1 ORDER BY "createdDate"`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			res       Result
			rawScore  string
			status    int
			createdAt *time.Time
		)
		if err := rows.Scan(&res.PuzzleID, &res.TeamName, &res.Grid, &rawScore, &res.Duration, &status, &createdAt, &res.Email); err != nil {
			return nil, err
		}
		res.Score, _ = strconv.ParseFloat(rawScore, 64)
		res.Won = status == 1
		if createdAt != nil {
			res.CreatedAt = createdAt.UTC()
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Totals aggregates scores per player directly in SQL.
func (r *PostgresRepository) Totals(ctx context.Context, todayOnly bool) ([]PlayerTotal, error) {
	query := `SELECT "Email",
        COALESCE(SUM(CAST(NULLIF("gameScore", '') AS double precision)), 0),
        COUNT(id)
        FROM crosswordpuzzleresults
        WHERE "Email" IS NOT NULL AND "Email" <> ''`
	if todayOnly {
		query += ` AND "createdDate"::date = CURRENT_DATE`
	}
	query += ` GROUP BY "Email" ORDER BY 2 DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlayerTotal
	for rows.Next() {
		var total PlayerTotal
		if err := rows.Scan(&total.Email, &total.TotalScore, &total.RoundsPlayed); err != nil {
			return nil, err
		}
		out = append(out, total)
	}
	return out, rows.Err()
}
