package auth

import (
	"errors"
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "test-issuer",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(42, "user@university.edu", "STUDENT", "ACTIVE")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty JTI")
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "user@university.edu" {
		t.Errorf("unexpected email: %q", claims.Email)
	}
	if claims.Role != "STUDENT" || claims.Status != "ACTIVE" {
		t.Errorf("unexpected role/status: %q/%q", claims.Role, claims.Status)
	}
	if claims.ID != jti {
		t.Errorf("claims JTI %q does not match generated %q", claims.ID, jti)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("unexpected issuer: %q", claims.Issuer)
	}
	if claims.Subject != "42" {
		t.Errorf("subject should be the account id, got %q", claims.Subject)
	}
}

func TestRefreshTokenOmitsSnapshot(t *testing.T) {
	m := testManager()

	token, _, err := m.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("expected refresh token type, got %q", claims.TokenType)
	}
	if claims.Role != "" || claims.Status != "" || claims.Email != "" {
		t.Errorf("refresh token must carry the subject only, got %q/%q/%q", claims.Role, claims.Status, claims.Email)
	}
	if claims.Subject != "7" {
		t.Errorf("subject should be the account id, got %q", claims.Subject)
	}

	// A refresh token must never pass the access gate
	if _, err := m.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for refresh token, got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := testManager()
	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour, RefreshExpiry: time.Hour, Issuer: "test-issuer"})

	token, _, err := m.GenerateAccessToken(1, "a@university.edu", "ADMIN", "ACTIVE")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: -time.Minute, RefreshExpiry: time.Hour, Issuer: "test-issuer"})

	token, _, err := m.GenerateAccessToken(1, "a@university.edu", "ADMIN", "ACTIVE")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := m.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestGetTokenExpiry(t *testing.T) {
	m := testManager()

	token, _, err := m.GenerateAccessToken(1, "a@university.edu", "STUDENT", "ACTIVE")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	expiry, err := m.GetTokenExpiry(token)
	if err != nil {
		t.Fatalf("GetTokenExpiry failed: %v", err)
	}
	until := time.Until(expiry)
	if until < 59*time.Minute || until > time.Hour {
		t.Errorf("expected roughly one hour until expiry, got %v", until)
	}
}
