package puzzle

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/isl-games/crossword-api/internal/logging"
	"github.com/isl-games/crossword-api/internal/results"
)

func newCrosswordApp() *fiber.App {
	repo := NewMemoryRepository()
	repo.Seed(testPuzzle())
	handler := NewHandler(NewService(repo, results.NewMemoryRepository(), logging.Discard()))

	app := fiber.New()
	app.Get("/api/crossword/puzzle/:puzzleID", handler.Get)
	app.Post("/api/crossword/submit", handler.Submit)
	return app
}

func testRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return resp, body
}

func TestGetPuzzleEndpoint(t *testing.T) {
	app := newCrosswordApp()

	req := httptest.NewRequest(http.MethodGet, "/api/crossword/puzzle/42", nil)
	resp, body := testRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", resp.StatusCode, body)
	}

	if body["puzzleID"] != "42" {
		t.Fatalf("unexpected puzzleID %v", body["puzzleID"])
	}
	across, _ := body["acrossHints"].([]any)
	if len(across) != 2 {
		t.Fatalf("expected 2 across hints, got %v", body["acrossHints"])
	}
	first, _ := across[0].(map[string]any)
	if first["cellID"] != float64(1) || first["answer"] != "CAT" || first["hint"] != "Feline" {
		t.Fatalf("unexpected hint shape %v", first)
	}
	boxes, _ := body["blackBoxArray"].([]any)
	if len(boxes) != 1 || boxes[0] != float64(5) {
		t.Fatalf("unexpected blackBoxArray %v", body["blackBoxArray"])
	}
}

func TestGetPuzzleEndpointNotFound(t *testing.T) {
	app := newCrosswordApp()

	req := httptest.NewRequest(http.MethodGet, "/api/crossword/puzzle/999", nil)
	resp, body := testRequest(t, app, req)
	if resp.StatusCode != http.StatusNotFound || body["error"] != "Puzzle not found" {
		t.Fatalf("expected 404 Puzzle not found, got %d (%v)", resp.StatusCode, body)
	}
}

func TestGetPuzzleEndpointEmptyArrays(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Seed(Puzzle{ID: "bare"})
	handler := NewHandler(NewService(repo, results.NewMemoryRepository(), logging.Discard()))
	app := fiber.New()
	app.Get("/api/crossword/puzzle/:puzzleID", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/crossword/puzzle/bare", nil)
	_, body := testRequest(t, app, req)

	// Absent hints serialize as empty arrays, never null.
	if _, ok := body["acrossHints"].([]any); !ok {
		t.Fatalf("acrossHints not an array: %v", body["acrossHints"])
	}
	if _, ok := body["blackBoxArray"].([]any); !ok {
		t.Fatalf("blackBoxArray not an array: %v", body["blackBoxArray"])
	}
}

func TestSubmitEndpoint(t *testing.T) {
	app := newCrosswordApp()

	payload, _ := json.Marshal(map[string]any{
		"puzzleID":        "42",
		"submittedPuzzle": solvedGrid(),
		"timeRemaining":   30,
		"teamName":        "Solvers",
		"email":           "a@b.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/crossword/submit", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, body := testRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if body["score"] != float64(3) || body["allWordsCorrect"] != true {
		t.Fatalf("unexpected submission body %v", body)
	}
	if body["message"] != "Submission successful" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestSubmitEndpointUnknownPuzzle(t *testing.T) {
	app := newCrosswordApp()

	payload := []byte(`{"puzzleID":"missing","submittedPuzzle":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/crossword/submit", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, body := testRequest(t, app, req)
	if resp.StatusCode != http.StatusNotFound || body["error"] != "Puzzle not found" {
		t.Fatalf("expected 404, got %d (%v)", resp.StatusCode, body)
	}
}
