package utils

import (
	"errors"
	"testing"
	"time"
)

func TestAssignmentTokenRoundTrip(t *testing.T) {
	now := time.Now()
	token, err := SignAssignmentToken("secret", "abc-123", time.Hour, now)
	if err != nil {
		t.Fatal(err)
	}

	publicID, err := ParseAssignmentToken("secret", token)
	if err != nil {
		t.Fatal(err)
	}
	if publicID != "abc-123" {
		t.Errorf("got %q, want abc-123", publicID)
	}
}

func TestAssignmentTokenWrongSecret(t *testing.T) {
	token, err := SignAssignmentToken("secret", "abc-123", time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAssignmentToken("other-secret", token); !errors.Is(err, ErrInvalidLinkToken) {
		t.Errorf("got %v, want ErrInvalidLinkToken", err)
	}
}

func TestAssignmentTokenExpired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := SignAssignmentToken("secret", "abc-123", time.Hour, issued)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAssignmentToken("secret", token); !errors.Is(err, ErrInvalidLinkToken) {
		t.Errorf("got %v, want ErrInvalidLinkToken", err)
	}
}

func TestGenerateSecureTokenUnique(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two generated tokens should not collide")
	}
}
