package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@university.edu", "first.last@dept.university.edu", "a+b@example.co"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	invalid := []string{"", "no-at-sign", "@missing-local.com", "user@", "user@nodot"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidateUSN(t *testing.T) {
	if ok, reason := ValidateUSN("1ab21cs001"); !ok {
		t.Errorf("expected valid USN, got reason %q", reason)
	}
	if ok, _ := ValidateUSN("abc"); ok {
		t.Error("too-short USN should be invalid")
	}
	if ok, _ := ValidateUSN("abcdefghijklm"); ok {
		t.Error("too-long USN should be invalid")
	}
	if ok, reason := ValidateUSN("1ab21-cs01"); ok || reason == "" {
		t.Error("USN with punctuation should be invalid with a reason")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00 world  "); got != "hello world" {
		t.Errorf("unexpected result: %q", got)
	}
}
