package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/isl-games/crossword-api/internal/logging"
)

func newGuardedApp(t *testing.T, cache *redis.Client) (*fiber.App, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64

	app := fiber.New()
	app.Post("/submit", SubmitOnce(cache, time.Minute, logging.Discard()), func(c *fiber.Ctx) error {
		n := hits.Add(1)
		return c.JSON(fiber.Map{"attempt": n})
	})
	return app, &hits
}

func submitWithKey(t *testing.T, app *fiber.App, key string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	if key != "" {
		req.Header.Set("X-Submission-Key", key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(raw)
}

func TestSubmitOnceReplaysStoredResponse(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app, hits := newGuardedApp(t, cache)

	resp, first := submitWithKey(t, app, "game-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first submission: expected 200, got %d", resp.StatusCode)
	}

	resp, second := submitWithKey(t, app, "game-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("replay: expected 200, got %d", resp.StatusCode)
	}
	if second != first {
		t.Fatalf("replay body %q differs from original %q", second, first)
	}
	if hits.Load() != 1 {
		t.Fatalf("handler ran %d times for one key", hits.Load())
	}
}

func TestSubmitOnceDistinctKeysScoreSeparately(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app, hits := newGuardedApp(t, cache)

	for i := 0; i < 3; i++ {
		resp, _ := submitWithKey(t, app, fmt.Sprintf("game-%d", i))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("submission %d: expected 200, got %d", i, resp.StatusCode)
		}
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 handler runs, got %d", hits.Load())
	}
}

func TestSubmitOnceWithoutKeyIsTransparent(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app, hits := newGuardedApp(t, cache)

	for i := 0; i < 2; i++ {
		if resp, _ := submitWithKey(t, app, ""); resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("keyless submissions should not dedupe, got %d runs", hits.Load())
	}
}

func TestSubmitOnceConflictWhileInFlight(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	// Simulate a reservation left by a submission still being scored.
	if err := mr.Set("submit:v1:game-1", "__in_flight__"); err != nil {
		t.Fatalf("seed marker: %v", err)
	}

	app, hits := newGuardedApp(t, cache)
	resp, _ := submitWithKey(t, app, "game-1")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 while in flight, got %d", resp.StatusCode)
	}
	if hits.Load() != 0 {
		t.Fatalf("handler ran behind an in-flight marker")
	}
}

func TestSubmitOnceNilCachePassthrough(t *testing.T) {
	app, hits := newGuardedApp(t, nil)

	for i := 0; i < 2; i++ {
		if resp, _ := submitWithKey(t, app, "game-1"); resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("nil cache should pass every request through, got %d runs", hits.Load())
	}
}

func TestSubmitOnceFailsOpenWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()
	mr.Close() // cache now points at a dead server

	app, hits := newGuardedApp(t, cache)
	resp, _ := submitWithKey(t, app, "game-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", resp.StatusCode)
	}
	if hits.Load() != 1 {
		t.Fatalf("handler should still run when redis is down")
	}
}
