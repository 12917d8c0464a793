package auth

import (
	"strings"
	"time"
)

// SessionManager mints and verifies logged-in session tokens. Sessions carry
// at least an email claim plus whatever identity fields the provider returned
// at authentication time.
type SessionManager struct {
	codec *Codec
	ttl   time.Duration
}

// NewSessionManager fixes the session purpose and TTL policy over the codec.
func NewSessionManager(codec *Codec, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{codec: codec, ttl: ttl}
}

// Issue mints a session token carrying the given claims.
func (m *SessionManager) Issue(data map[string]string) (Token, error) {
	return m.codec.Mint(PurposeSession, data, m.ttl)
}

// Verify validates a session token and returns its claims.
func (m *SessionManager) Verify(token string) (Claims, error) {
	return m.codec.Verify(token, PurposeSession)
}

// VerifyBearer extracts the token from an Authorization header value and
// verifies it as a session. An absent or malformed header fails like any
// other bad token.
func (m *SessionManager) VerifyBearer(header string) (Claims, error) {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return Claims{}, &TokenError{Reason: "missing bearer token"}
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return Claims{}, &TokenError{Reason: "missing bearer token"}
	}
	return m.Verify(token)
}
