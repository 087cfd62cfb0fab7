package services

import (
	"strings"
	"testing"
)

func TestSnippet(t *testing.T) {
	if got := snippet("short text", 200); got != "short text" {
		t.Errorf("short text should pass through, got %q", got)
	}

	long := strings.Repeat("x", 300)
	got := snippet(long, 200)
	if len([]rune(got)) != 200 {
		t.Errorf("expected 200 runes, got %d", len([]rune(got)))
	}

	unicode := strings.Repeat("é", 150)
	if got := snippet(unicode, 100); len([]rune(got)) != 100 {
		t.Errorf("snippet must cut on rune boundaries, got %d runes", len([]rune(got)))
	}
}

func TestDefaultClassification(t *testing.T) {
	c := DefaultClassification()
	if c.SubjectCode != "UNKNOWN" {
		t.Errorf("expected UNKNOWN subject, got %q", c.SubjectCode)
	}
	if c.Semester != 6 {
		t.Errorf("expected semester 6, got %d", c.Semester)
	}
	if c.Unit != 1 {
		t.Errorf("expected unit 1, got %d", c.Unit)
	}
}
