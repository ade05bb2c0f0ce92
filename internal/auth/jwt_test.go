package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret-key")

	token, err := GenerateToken(secret, time.Hour, 42, "User")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, role, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("got userID %d, want 42", userID)
	}
	if role != "User" {
		t.Errorf("got role %q, want User", role)
	}
}

func TestTokenCarriesAdminRole(t *testing.T) {
	secret := []byte("test-secret-key")

	token, err := GenerateToken(secret, time.Hour, 7, "Admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, role, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if role != "Admin" {
		t.Errorf("got role %q, want Admin", role)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-one"), time.Hour, 1, "User")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ValidateToken([]byte("secret-two"), token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret-key")

	token, err := GenerateToken(secret, -time.Minute, 1, "User")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ValidateToken(secret, token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	if _, _, err := ValidateToken([]byte("test-secret-key"), "not.a.token"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}
