package auth

import (
	"testing"
	"time"
)

// newTestTokenService uses a fixed secret so tests are deterministic.
func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short")
	if err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestGenerateAccess_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)
	userID := "user-abc-123"

	token, err := ts.GenerateAccess(userID)
	if err != nil {
		t.Fatalf("GenerateAccess() error = %v", err)
	}

	got, err := ts.Validate(token, TokenTypeAccess)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != userID {
		t.Errorf("Validate() userID = %q, want %q", got, userID)
	}
}

func TestValidate_RejectsWrongTokenType(t *testing.T) {
	ts := newTestTokenService(t)

	refresh, err := ts.GenerateRefresh("user-123")
	if err != nil {
		t.Fatalf("GenerateRefresh() error = %v", err)
	}

	if _, err := ts.Validate(refresh, TokenTypeAccess); err == nil {
		t.Fatal("Validate() accepted a refresh token as an access token")
	}

	access, _ := ts.GenerateAccess("user-123")
	if _, err := ts.Validate(access, TokenTypeRefresh); err == nil {
		t.Fatal("Validate() accepted an access token as a refresh token")
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.GenerateWithDuration("user-123", TokenTypeAccess, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	_, err = ts.Validate(token, TokenTypeAccess)
	if err == nil {
		t.Fatal("Validate() should return an error for an expired token")
	}
	t.Logf("Expired token error (expected): %v", err)
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, _ := ts.GenerateAccess("user-123")
	tampered := token[:len(token)-3] + "xxx"

	_, err := ts.Validate(tampered, TokenTypeAccess)
	if err == nil {
		t.Fatal("Validate() should return an error for a tampered token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts1, _ := NewTokenService("correct-secret-32-chars-long!!!!")
	ts2, _ := NewTokenService("wrong-secret-32-chars-long!!!!!!")

	token, _ := ts1.GenerateAccess("user-123")

	if _, err := ts2.Validate(token, TokenTypeAccess); err == nil {
		t.Fatal("Validate() should fail when using a different secret")
	}
}

func TestValidate_Garbage(t *testing.T) {
	ts := newTestTokenService(t)

	for _, token := range []string{"", "not.a.jwt", "not.a.jwt.token"} {
		if _, err := ts.Validate(token, TokenTypeAccess); err == nil {
			t.Errorf("Validate(%q) should return an error", token)
		}
	}
}
