package auth

import (
	"testing"
	"time"
)

func TestOTPChallengeRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")
	manager := NewOTPChallengeManager(codec, 5*time.Minute)

	token, err := manager.Issue("15551234567", ChannelWhatsApp)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	challenge, err := manager.Verify(token.Value)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if challenge.Identifier != "15551234567" {
		t.Fatalf("expected identifier 15551234567, got %q", challenge.Identifier)
	}
	if challenge.Channel != ChannelWhatsApp {
		t.Fatalf("expected channel whatsapp, got %q", challenge.Channel)
	}
	if challenge.ID != token.ID {
		t.Fatalf("expected challenge id %s, got %s", token.ID, challenge.ID)
	}
}

func TestOTPChallengeNotASession(t *testing.T) {
	codec := NewCodec("test-secret")
	sessions := NewSessionManager(codec, time.Hour)
	challenges := NewOTPChallengeManager(codec, 5*time.Minute)

	token, err := challenges.Issue("a@b.com", ChannelEmail)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := sessions.Verify(token.Value); err == nil {
		t.Fatal("otp challenge accepted as session")
	}
}

func TestSessionVerifyBearer(t *testing.T) {
	codec := NewCodec("test-secret")
	sessions := NewSessionManager(codec, time.Hour)

	token, err := sessions.Issue(map[string]string{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := sessions.VerifyBearer("Bearer " + token.Value)
	if err != nil {
		t.Fatalf("verify bearer: %v", err)
	}
	if claims.Data["email"] != "a@b.com" {
		t.Fatalf("unexpected claims %+v", claims.Data)
	}

	for _, header := range []string{"", "Bearer ", "Basic " + token.Value, token.Value} {
		if _, err := sessions.VerifyBearer(header); err == nil {
			t.Fatalf("header %q accepted", header)
		}
	}
}
