package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/isl-games/crossword-api/internal/provider"
)

// Every outbound payload carries the system_name discriminator; registration
// additionally pins the role the provider should assign.
const (
	systemName   = "isl"
	registerRole = "isl_user"
)

// Environment variables naming the provider endpoints.
const (
	envLoginURL          = "LOGIN_THROUGH_PASSWORD_URL"
	envRegisterURL       = "REGISTER_URL"
	envForgotPasswordURL = "FORGET_PASSWORD_URL"
	envSendOTPURL        = "SEND_OTP_URL"
	envVerifyOTPURL      = "VERIFY_OTP_URL"
)

// ValidationError reports request input rejected before any provider contact.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service is the authentication facade consumed by request handlers. Each
// operation composes endpoint resolution, the provider gateway and the token
// managers, and returns either a typed result or a typed failure. The service
// holds no mutable state; everything lives inside the tokens.
type Service struct {
	gateway  provider.Gateway
	sessions *SessionManager
	otp      *OTPChallengeManager
	guard    *ChallengeGuard
	logger   *slog.Logger
}

// NewService wires the orchestrator.
func NewService(gateway provider.Gateway, sessions *SessionManager, otp *OTPChallengeManager, guard *ChallengeGuard, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, sessions: sessions, otp: otp, guard: guard, logger: logger}
}

// SessionResult is the outcome of a session-issuing operation.
type SessionResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
}

// AckResult acknowledges an operation that issues no token.
type AckResult struct {
	Message string
}

// ChallengeResult is the outcome of an OTP request.
type ChallengeResult struct {
	ChallengeID string
	ExpiresAt   time.Time
}

// IdentityResult echoes the verified claims of a session token.
type IdentityResult struct {
	Email       string
	DisplayName string
	Phone       string
}

// NormalizePhone strips every non-digit character from a raw phone number.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Login delegates the credential check to the provider and mints a session
// whose claims are the submitted email merged with the provider's payload.
func (s *Service) Login(ctx context.Context, username, password string) (SessionResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return SessionResult{}, &ValidationError{Message: "Please enter username and password."}
	}

	result, err := s.callProvider(ctx, envLoginURL, map[string]string{
		"email":    username,
		"password": password,
	}, "Invalid username or password.")
	if err != nil {
		return SessionResult{}, err
	}

	return s.issueSession(username, result.Fields)
}

// Register forwards the new account to the provider with the fixed role.
func (s *Service) Register(ctx context.Context, displayName, email, phoneNumber, password string) (AckResult, error) {
	displayName = strings.TrimSpace(displayName)
	email = strings.TrimSpace(email)
	phoneNumber = NormalizePhone(phoneNumber)
	password = strings.TrimSpace(password)
	if displayName == "" || email == "" || phoneNumber == "" || password == "" {
		return AckResult{}, &ValidationError{Message: "Please fill all required fields."}
	}

	result, err := s.callProvider(ctx, envRegisterURL, map[string]string{
		"display_name": displayName,
		"email":        email,
		"phone_number": phoneNumber,
		"password":     password,
		"role":         registerRole,
	}, "Unable to create account.")
	if err != nil {
		return AckResult{}, err
	}

	return AckResult{Message: result.Message}, nil
}

// ForgotPassword asks the provider to reset the account password.
func (s *Service) ForgotPassword(ctx context.Context, email, password string) (AckResult, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return AckResult{}, &ValidationError{Message: "Please enter email and password."}
	}

	result, err := s.callProvider(ctx, envForgotPasswordURL, map[string]string{
		"email":    email,
		"password": password,
	}, "Unable to reset password.")
	if err != nil {
		return AckResult{}, err
	}

	return AckResult{Message: result.Message}, nil
}

// RequestOTP asks the provider to send a one-time code over the channel and
// hands the caller a signed challenge binding the identifier to that send.
func (s *Service) RequestOTP(ctx context.Context, channel, phone, email, username string) (ChallengeResult, error) {
	channel = strings.ToLower(strings.TrimSpace(channel))

	if phone == "" {
		phone = username
	}
	phone = NormalizePhone(phone)
	if email == "" {
		email = username
	}
	email = strings.TrimSpace(email)

	var identifier string
	switch channel {
	case ChannelWhatsApp:
		if phone == "" {
			return ChallengeResult{}, &ValidationError{Message: "Please enter mobile number."}
		}
		identifier = phone
	case ChannelEmail:
		if email == "" {
			return ChallengeResult{}, &ValidationError{Message: "Please enter email id."}
		}
		identifier = email
	default:
		return ChallengeResult{}, &ValidationError{Message: "Invalid OTP channel."}
	}

	if _, err := s.callProvider(ctx, envSendOTPURL, map[string]string{
		"email": identifier,
		"type":  channel,
	}, "Unable to request key"); err != nil {
		return ChallengeResult{}, err
	}

	token, err := s.otp.Issue(identifier, channel)
	if err != nil {
		return ChallengeResult{}, err
	}

	return ChallengeResult{ChallengeID: token.Value, ExpiresAt: token.ExpiresAt}, nil
}

// VerifyOTP validates the challenge token locally, then asks the provider to
// check the code. A bad or expired challenge never reaches the provider. A
// successful exchange consumes the challenge so it cannot be replayed.
func (s *Service) VerifyOTP(ctx context.Context, challengeID, otp string) (SessionResult, error) {
	otp = strings.TrimSpace(otp)
	if challengeID == "" || otp == "" {
		return SessionResult{}, &ValidationError{Message: "Please enter OTP."}
	}

	challenge, err := s.otp.Verify(challengeID)
	if err != nil {
		return SessionResult{}, err
	}

	result, err := s.callProvider(ctx, envVerifyOTPURL, map[string]string{
		"email": challenge.Identifier,
		"otp":   otp,
	}, "Invalid or expired OTP.")
	if err != nil {
		return SessionResult{}, err
	}

	first, err := s.guard.Consume(ctx, challenge.ID, challenge.ExpiresAt)
	if err != nil && s.logger != nil {
		s.logger.Warn("challenge guard unavailable", "error", err)
	}
	if !first {
		return SessionResult{}, &TokenError{Reason: "challenge already used"}
	}

	return s.issueSession(challenge.Identifier, result.Fields)
}

// Identity verifies the bearer header as a session token and echoes its claims.
func (s *Service) Identity(authorization string) (IdentityResult, error) {
	claims, err := s.sessions.VerifyBearer(authorization)
	if err != nil {
		return IdentityResult{}, err
	}
	return IdentityResult{
		Email:       strings.TrimSpace(claims.Data["email"]),
		DisplayName: claims.Data["display_name"],
		Phone:       claims.Data["phone_number"],
	}, nil
}

// issueSession mints a session token seeded with the email and overlaid with
// the provider's echoed fields, which may refine the email itself.
func (s *Service) issueSession(email string, fields map[string]string) (SessionResult, error) {
	data := map[string]string{"email": email}
	for key, value := range fields {
		data[key] = value
	}

	token, err := s.sessions.Issue(data)
	if err != nil {
		return SessionResult{}, err
	}

	return SessionResult{Token: token.Value, ExpiresAt: token.ExpiresAt, Username: email}, nil
}

// callProvider resolves the endpoint, posts the payload with the system_name
// discriminator attached and converts a provider refusal into a typed
// rejection with a best-effort message.
func (s *Service) callProvider(ctx context.Context, urlEnv string, payload map[string]string, defaultMessage string) (provider.Result, error) {
	url, err := provider.Endpoint(urlEnv)
	if err != nil {
		return provider.Result{}, err
	}

	payload["system_name"] = systemName

	result, err := s.gateway.Post(ctx, url, payload)
	if err != nil {
		return provider.Result{}, err
	}

	if !result.OK {
		message := result.Message
		if message == "" {
			message = defaultMessage
		}
		return provider.Result{}, &provider.RejectionError{Message: message}
	}

	return result, nil
}
