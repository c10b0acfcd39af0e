package utils

import (
	"testing"
	"time"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, expiresAt, err := m.GenerateSessionToken("manager")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiry %v is not in the future", expiresAt)
	}

	claims, err := m.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("ValidateSessionToken: %v", err)
	}
	if claims.Username != "manager" {
		t.Errorf("username = %q, want manager", claims.Username)
	}
	if claims.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Hour).GenerateSessionToken("manager")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTManager("two", time.Hour).ValidateSessionToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, _, err := m.GenerateSessionToken("manager")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateSessionToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("expected matching password to pass")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}
