package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures application runtime configuration loaded from environment variables.
//
// Provider endpoint URLs (LOGIN_THROUGH_PASSWORD_URL and friends) are deliberately
// not part of this struct: they are resolved per operation by the provider package
// so that a missing endpoint fails the one operation that needs it instead of
// refusing to boot the whole service.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"CrosswordAPI"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// TokenSecret signs session and OTP challenge tokens. Required.
	TokenSecret string        `env:"TOKEN_SECRET"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	OTPTTL      time.Duration `env:"OTP_TTL" envDefault:"5m"`

	// ProviderTimeout bounds a single outbound call to the identity provider.
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`

	// DatabaseURL and RedisURL are optional in development; the service falls
	// back to in-memory stores and disables the replay/submit guards.
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	ShutdownPeriod time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SubmitGuardTTL time.Duration `env:"SUBMIT_GUARD_TTL" envDefault:"24h"`
}

// Load reads configuration values from the environment and populates a Config
// instance. A .env file in the working directory is merged in first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("TOKEN_SECRET must be set")
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the service runs in a development-like environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
