package provider

import (
	"errors"
	"testing"
)

func TestEndpointResolution(t *testing.T) {
	t.Setenv("SEND_OTP_URL", "http://provider.test/otp/send")

	url, err := Endpoint("SEND_OTP_URL")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if url != "http://provider.test/otp/send" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestEndpointTrimsWhitespace(t *testing.T) {
	t.Setenv("REGISTER_URL", "  http://provider.test/register \n")

	url, err := Endpoint("REGISTER_URL")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if url != "http://provider.test/register" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestEndpointUnsetOrBlank(t *testing.T) {
	for _, value := range []string{"", "   "} {
		t.Setenv("VERIFY_OTP_URL", value)

		_, err := Endpoint("VERIFY_OTP_URL")
		var configErr *ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("value %q: expected config error, got %v", value, err)
		}
		if configErr.Name != "VERIFY_OTP_URL" {
			t.Fatalf("expected variable name in error, got %q", configErr.Name)
		}
	}
}
