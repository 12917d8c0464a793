package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretDecisionTable(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		ok      bool
		message string
	}{
		{name: "empty object", body: `{}`, ok: true},
		{name: "status ok", body: `{"status":"ok"}`, ok: true, message: "ok"},
		{name: "status success", body: `{"status":"success"}`, ok: true, message: "success"},
		{name: "status error", body: `{"status":"error"}`, ok: false, message: "error"},
		{name: "status failed uppercase", body: `{"status":"FAILED"}`, ok: false, message: "FAILED"},
		{name: "status failure padded", body: `{"status":" failure "}`, ok: false, message: "failure"},
		{name: "error field", body: `{"error":"invalid password"}`, ok: false, message: "invalid password"},
		{name: "blank error field", body: `{"error":"  "}`, ok: true},
		{name: "success false", body: `{"success":false}`, ok: false},
		{name: "success true", body: `{"success":true}`, ok: true},
		{name: "message only", body: `{"message":"code sent"}`, ok: true, message: "code sent"},
		{name: "error outranks message", body: `{"error":"nope","message":"yes"}`, ok: false, message: "nope"},
		{name: "unknown fields tolerated", body: `{"whatever":1,"nested":{"x":2}}`, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Interpret([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.ok, result.OK)
			assert.Equal(t, tc.message, result.Message)
		})
	}
}

func TestInterpretRejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1,2,3]`, `"string"`, `42`, `null`} {
		_, err := Interpret([]byte(body))
		var gatewayErr *GatewayError
		require.ErrorAs(t, err, &gatewayErr, "body %q", body)
		assert.Equal(t, "decode response", gatewayErr.Op)
	}
}

func TestInterpretCollectsScalarFields(t *testing.T) {
	result, err := Interpret([]byte(`{
		"status": "ok",
		"display_name": "A",
		"age": 30,
		"verified": true,
		"tags": ["x"],
		"profile": {"deep": 1}
	}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"status":       "ok",
		"display_name": "A",
		"age":          "30",
		"verified":     "true",
	}, result.Fields)
}

func TestClientPostSendsForm(t *testing.T) {
	var gotContentType, gotEmail, gotSystem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotEmail = r.PostFormValue("email")
		gotSystem = r.PostFormValue("system_name")
		w.Write([]byte(`{"status":"ok","display_name":"A"}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	result, err := client.Post(context.Background(), srv.URL, map[string]string{
		"email":       "a@b.com",
		"system_name": "isl",
	})
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "a@b.com", gotEmail)
	assert.Equal(t, "isl", gotSystem)
	assert.True(t, result.OK)
	assert.Equal(t, "A", result.Fields["display_name"])
}

func TestClientPostTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	client := NewClient(time.Second)
	_, err := client.Post(context.Background(), srv.URL, map[string]string{"email": "a@b.com"})

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "request", gatewayErr.Op)
	assert.NotNil(t, errors.Unwrap(gatewayErr))
}

func TestClientPostMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer srv.Close()

	client := NewClient(time.Second)
	_, err := client.Post(context.Background(), srv.URL, nil)

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
}

func TestClientPostHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(10 * time.Second)
	_, err := client.Post(ctx, srv.URL, nil)

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
}

func TestStaticGatewayApprovesEverything(t *testing.T) {
	gateway := StaticGateway{Fields: map[string]string{"display_name": "A"}}
	result, err := gateway.Post(context.Background(), "http://anywhere", nil)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "A", result.Fields["display_name"])
}
