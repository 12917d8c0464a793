package provider

import (
	"os"
	"strings"
)

// Endpoint resolves a provider endpoint URL from the environment variable of
// the given name. Endpoints are looked up per operation rather than at boot so
// a missing binding only fails the operations that need it.
func Endpoint(name string) (string, error) {
	url := strings.TrimSpace(os.Getenv(name))
	if url == "" {
		return "", &ConfigError{Name: name}
	}
	return url, nil
}
