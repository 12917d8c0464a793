package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/isl-games/crossword-api/internal/auth"
	"github.com/isl-games/crossword-api/internal/config"
	"github.com/isl-games/crossword-api/internal/middleware"
	"github.com/isl-games/crossword-api/internal/provider"
	"github.com/isl-games/crossword-api/internal/puzzle"
	"github.com/isl-games/crossword-api/internal/results"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg     config.Config
	DB      *pgxpool.Pool
	Cache   *redis.Client
	Gateway provider.Gateway
	Logger  *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// Token managers share one codec; the purpose tag keeps session and OTP
	// challenge tokens from standing in for each other.
	codec := auth.NewCodec(d.Cfg.TokenSecret)
	sessions := auth.NewSessionManager(codec, d.Cfg.SessionTTL)
	challenges := auth.NewOTPChallengeManager(codec, d.Cfg.OTPTTL)
	guard := auth.NewChallengeGuard(d.Cache)

	gateway := d.Gateway
	if gateway == nil {
		gateway = provider.NewClient(d.Cfg.ProviderTimeout)
	}

	authSvc := auth.NewService(gateway, sessions, challenges, guard, d.Logger)
	authHandler := auth.NewHandler(authSvc)

	var puzzleRepo puzzle.Repository
	if d.DB != nil {
		puzzleRepo = puzzle.NewPostgresRepository(d.DB)
	} else {
		puzzleRepo = puzzle.NewMemoryRepository()
	}
	var resultsRepo results.Repository
	if d.DB != nil {
		resultsRepo = results.NewPostgresRepository(d.DB)
	} else {
		resultsRepo = results.NewMemoryRepository()
	}

	puzzleHandler := puzzle.NewHandler(puzzle.NewService(puzzleRepo, resultsRepo, d.Logger))
	resultsHandler := results.NewHandler(results.NewService(resultsRepo))

	RegisterAuthRoutes(app, authHandler)
	RegisterCrosswordRoutes(app, puzzleHandler, resultsHandler, d)

	return nil
}
