package provider

import "fmt"

// ConfigError indicates a required provider endpoint is not bound in the
// environment. Operator-fixable; surfaces as HTTP 500.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Name)
}

// GatewayError wraps a transport or decode failure while talking to the
// identity provider. Surfaces as HTTP 502; the caller may retry, this
// service never does.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("identity provider %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// RejectionError carries the provider's explicit refusal. The HTTP status
// depends on the operation (401 for credential checks, 400 otherwise).
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}
