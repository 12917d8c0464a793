package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPurpose discriminates what a token may be used for. A token minted for
// one purpose never verifies for another, so an OTP challenge cannot be
// replayed as a login session.
type TokenPurpose string

const (
	PurposeSession      TokenPurpose = "session"
	PurposeOTPChallenge TokenPurpose = "otp_challenge"
)

// TokenError covers every way a token can fail verification: malformed
// encoding, signature mismatch, purpose mismatch, or expiry.
type TokenError struct {
	Reason string
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

type tokenClaims struct {
	Purpose TokenPurpose      `json:"purpose"`
	Data    map[string]string `json:"data,omitempty"`
	jwt.RegisteredClaims
}

// Token is a minted, signed token together with its identity and expiry.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Claims is the verified content of a token.
type Claims struct {
	Data      map[string]string
	ID        string
	ExpiresAt time.Time
}

// Codec turns a claims map plus a purpose tag into an opaque, tamper-evident,
// time-bounded token string and reverses the operation with signature and
// expiry verification. Tokens are HS256-signed JWTs; the signature covers
// purpose, claims and expiry alike, which is the only integrity guarantee in
// play since there is no server-side token store.
type Codec struct {
	secret []byte
}

// NewCodec builds a codec signing with the given shared secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Mint issues a token for the purpose carrying the claims data, valid for ttl.
func (c *Codec) Mint(purpose TokenPurpose, data map[string]string, ttl time.Duration) (Token, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := tokenClaims{
		Purpose: purpose,
		Data:    data,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{Value: signed, ID: claims.ID, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, expiry and purpose, returning the embedded claims.
// Any failure comes back as *TokenError.
func (c *Codec) Verify(token string, purpose TokenPurpose) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, &TokenError{Reason: "invalid or expired token", Err: err}
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return Claims{}, &TokenError{Reason: "invalid token claims"}
	}
	if claims.Purpose != purpose {
		return Claims{}, &TokenError{Reason: "token purpose mismatch"}
	}

	data := claims.Data
	if data == nil {
		data = make(map[string]string)
	}

	return Claims{Data: data, ID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}
