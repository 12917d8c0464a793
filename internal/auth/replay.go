package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const usedChallengePrefix = "otp:used:"

// ChallengeGuard tracks consumed OTP challenge tokens in Redis so a challenge
// that was already exchanged for a session cannot be replayed before its
// natural expiry. The tokens themselves stay stateless; the guard only keys
// off the token ID with a TTL matching the token's remaining lifetime.
//
// Without Redis the guard is a no-op and replay is bounded by token expiry
// alone, matching the original stateless design.
type ChallengeGuard struct {
	cache *redis.Client
}

// NewChallengeGuard wraps the Redis client. A nil client disables the guard.
func NewChallengeGuard(cache *redis.Client) *ChallengeGuard {
	return &ChallengeGuard{cache: cache}
}

// Consume marks the challenge ID as used and reports whether this was the
// first use. Cache errors fail open; the caller may log them.
func (g *ChallengeGuard) Consume(ctx context.Context, id string, expiresAt time.Time) (bool, error) {
	if g == nil || g.cache == nil || id == "" {
		return true, nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Expired challenges are rejected by token verification before the
		// guard is consulted.
		return true, nil
	}

	first, err := g.cache.SetNX(ctx, usedChallengePrefix+id, 1, ttl).Result()
	if err != nil {
		return true, err
	}
	return first, nil
}
