package results

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
)

// ErrPlayerNotFound indicates no leaderboard entry matched the search.
var ErrPlayerNotFound = errors.New("player not found")

const leaderboardSize = 10

// Service computes leaderboard, analytics and history views over stored results.
type Service struct {
	repo Repository
}

// NewService builds the results service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Email        string  `json:"email"`
	TotalScore   float64 `json:"totalScore"`
	RoundsPlayed int     `json:"roundsPlayed"`
}

// Leaderboard returns the top players by total score.
func (s *Service) Leaderboard(ctx context.Context, todayOnly bool) ([]LeaderboardEntry, error) {
	totals, err := s.repo.Totals(ctx, todayOnly)
	if err != nil {
		return nil, err
	}
	if len(totals) > leaderboardSize {
		totals = totals[:leaderboardSize]
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for i, total := range totals {
		entries = append(entries, rankedEntry(i+1, total))
	}
	return entries, nil
}

// Search finds a player's ranked entry by email substring, even outside the
// top of the leaderboard.
func (s *Service) Search(ctx context.Context, email string, todayOnly bool) (LeaderboardEntry, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return LeaderboardEntry{}, ErrPlayerNotFound
	}

	totals, err := s.repo.Totals(ctx, todayOnly)
	if err != nil {
		return LeaderboardEntry{}, err
	}

	for i, total := range totals {
		if strings.Contains(strings.ToLower(total.Email), needle) {
			return rankedEntry(i+1, total), nil
		}
	}
	return LeaderboardEntry{}, ErrPlayerNotFound
}

// Analytics summarizes one player's games.
type Analytics struct {
	TotalGames   int     `json:"totalGames"`
	TotalWins    int     `json:"totalWins"`
	TotalLosses  int     `json:"totalLosses"`
	BestScore    float64 `json:"bestScore"`
	AverageScore float64 `json:"averageScore"`
	WinRate      int     `json:"winRate"`
}

// Analytics computes per-player statistics.
func (s *Service) Analytics(ctx context.Context, email string) (Analytics, error) {
	records, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return Analytics{}, err
	}

	var stats Analytics
	var sum float64
	for _, res := range records {
		stats.TotalGames++
		if res.Won {
			stats.TotalWins++
		} else {
			stats.TotalLosses++
		}
		if res.Score > stats.BestScore {
			stats.BestScore = res.Score
		}
		sum += res.Score
	}
	if stats.TotalGames > 0 {
		stats.AverageScore = round2(sum / float64(stats.TotalGames))
		stats.WinRate = int(math.Round(float64(stats.TotalWins) / float64(stats.TotalGames) * 100))
	}
	stats.BestScore = round2(stats.BestScore)
	return stats, nil
}

// GameRecord is one row of a player's game history.
type GameRecord struct {
	PuzzleID string     `json:"puzzleId"`
	Score    float64    `json:"score"`
	Duration string     `json:"duration"`
	Status   int        `json:"status"`
	Date     *time.Time `json:"date"`
}

// History lists a player's games in submission order.
func (s *Service) History(ctx context.Context, email string) ([]GameRecord, error) {
	records, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	games := make([]GameRecord, 0, len(records))
	for _, res := range records {
		record := GameRecord{
			PuzzleID: res.PuzzleID,
			Score:    round2(res.Score),
			Duration: res.Duration,
		}
		if res.Won {
			record.Status = 1
		}
		if record.Duration == "" {
			record.Duration = "0"
		}
		if !res.CreatedAt.IsZero() {
			date := res.CreatedAt
			record.Date = &date
		}
		games = append(games, record)
	}
	return games, nil
}

func rankedEntry(rank int, total PlayerTotal) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:         rank,
		Email:        total.Email,
		TotalScore:   round1(total.TotalScore),
		RoundsPlayed: total.RoundsPlayed,
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
