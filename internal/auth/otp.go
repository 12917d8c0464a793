package auth

import (
	"time"
)

// Delivery channels for one-time passcodes.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// Claim keys used inside an OTP challenge token.
const (
	claimIdentifier = "identifier"
	claimChannel    = "channel"
)

// Challenge is a verified OTP challenge: the contact identifier the code was
// sent to and the channel it went out on.
type Challenge struct {
	Identifier string
	Channel    string
	ID         string
	ExpiresAt  time.Time
}

// OTPChallengeManager mints and verifies the short-lived challenge tokens
// handed out when an OTP is sent. Challenge claims are restricted to the
// identifier/channel pair.
type OTPChallengeManager struct {
	codec *Codec
	ttl   time.Duration
}

// NewOTPChallengeManager fixes the otp_challenge purpose and TTL policy.
func NewOTPChallengeManager(codec *Codec, ttl time.Duration) *OTPChallengeManager {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPChallengeManager{codec: codec, ttl: ttl}
}

// Issue mints a challenge token binding the identifier and channel.
func (m *OTPChallengeManager) Issue(identifier, channel string) (Token, error) {
	data := map[string]string{
		claimIdentifier: identifier,
		claimChannel:    channel,
	}
	return m.codec.Mint(PurposeOTPChallenge, data, m.ttl)
}

// Verify validates a challenge token and unpacks its bound identifier/channel.
func (m *OTPChallengeManager) Verify(token string) (Challenge, error) {
	claims, err := m.codec.Verify(token, PurposeOTPChallenge)
	if err != nil {
		return Challenge{}, err
	}
	return Challenge{
		Identifier: claims.Data[claimIdentifier],
		Channel:    claims.Data[claimChannel],
		ID:         claims.ID,
		ExpiresAt:  claims.ExpiresAt,
	}, nil
}
