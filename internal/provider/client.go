package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Responses larger than this are treated as a broken upstream contract.
const maxResponseBytes = 1 << 20

// Result is the normalized provider response. Fields carries the flat string
// scalars of the payload so successful responses can seed session claims.
type Result struct {
	OK      bool
	Message string
	Fields  map[string]string
}

// Gateway sends a form-encoded request to an identity provider endpoint and
// normalizes the JSON response.
type Gateway interface {
	Post(ctx context.Context, url string, payload map[string]string) (Result, error)
}

// Client is the HTTP Gateway implementation.
type Client struct {
	http *http.Client
}

// NewClient builds a provider client with the given per-call timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Post submits the payload as application/x-www-form-urlencoded and interprets
// the JSON reply. Transport and decode failures come back as *GatewayError.
func (c *Client) Post(ctx context.Context, url string, payload map[string]string) (Result, error) {
	form := neturl.Values{}
	for key, value := range payload {
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, &GatewayError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, &GatewayError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, &GatewayError{Op: "read response", Err: err}
	}

	return Interpret(body)
}

// Interpret normalizes a raw provider response body. The provider contract is
// loose, so the decision table accepts multiple shapes without failing on
// unexpected fields: a response is a failure only when it carries a non-empty
// "error", a failure-flavored "status", or an explicit success=false.
func Interpret(body []byte) (Result, error) {
	if !gjson.ValidBytes(body) {
		return Result{}, &GatewayError{Op: "decode response", Err: errors.New("response is not valid JSON")}
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return Result{}, &GatewayError{Op: "decode response", Err: errors.New("response is not a JSON object")}
	}

	return Result{
		OK:      isSuccess(doc),
		Message: extractMessage(doc),
		Fields:  scalarFields(doc),
	}, nil
}

func isSuccess(doc gjson.Result) bool {
	if errField := doc.Get("error"); errField.Exists() && strings.TrimSpace(errField.String()) != "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(doc.Get("status").String())) {
	case "error", "failed", "failure":
		return false
	}
	if success := doc.Get("success"); success.Exists() && !success.Bool() {
		return false
	}
	return true
}

// extractMessage picks the best human-readable message: error, then message,
// then status. Callers supply their own default when all are absent.
func extractMessage(doc gjson.Result) string {
	for _, key := range []string{"error", "message", "status"} {
		if value := strings.TrimSpace(doc.Get(key).String()); value != "" {
			return value
		}
	}
	return ""
}

func scalarFields(doc gjson.Result) map[string]string {
	fields := make(map[string]string)
	doc.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			fields[key.String()] = value.String()
		}
		return true
	})
	return fields
}

// StaticGateway simulates a provider that accepts every request. Tests and
// local development use it in place of a live identity provider.
type StaticGateway struct {
	Fields map[string]string
}

// Post approves the request, echoing the configured fields.
func (g StaticGateway) Post(_ context.Context, _ string, _ map[string]string) (Result, error) {
	return Result{OK: true, Message: "success", Fields: g.Fields}, nil
}
