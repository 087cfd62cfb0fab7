package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("correct password should verify: %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordRejectsShortInput(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Error("expected error for password below minimum length")
	}
}

func TestIsPasswordValid(t *testing.T) {
	if IsPasswordValid("1234567") {
		t.Error("7 characters should be invalid")
	}
	if !IsPasswordValid("12345678") {
		t.Error("8 characters should be valid")
	}
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := GenerateTempPassword()
		if err != nil {
			t.Fatalf("GenerateTempPassword failed: %v", err)
		}
		if len(pw) != 12 {
			t.Errorf("expected 12 characters, got %d", len(pw))
		}
		// Ambiguous glyphs are excluded from the charset
		if strings.ContainsAny(pw, "0O1lI") {
			t.Errorf("password contains ambiguous characters: %q", pw)
		}
		seen[pw] = true
	}
	if len(seen) < 2 {
		t.Error("generated passwords should not repeat")
	}
}
