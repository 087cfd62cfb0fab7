package utils

import (
	"errors"
	"testing"
)

func TestExtractJSONPlain(t *testing.T) {
	got, err := ExtractJSON(`{"subject_code": "CS301", "semester": 5}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"subject_code": "CS301", "semester": 5}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	response := "```json\n{\"unit\": 3}\n```"
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"unit": 3}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	response := `Sure, here is the classification you asked for:
{"subject_code": "EC204", "semester": 4, "unit": 2}
Let me know if you need anything else.`
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"subject_code": "EC204", "semester": 4, "unit": 2}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONNestedBraces(t *testing.T) {
	response := `prefix {"outer": {"inner": "value with } brace"}} suffix`
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"outer": {"inner": "value with } brace"}}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	got, err := ExtractJSON(`noise [1, 2, 3] more noise`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `[1, 2, 3]` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractJSONNoPayload(t *testing.T) {
	_, err := ExtractJSON("I am sorry, I cannot answer that.")
	if !errors.Is(err, ErrNoJSONFound) {
		t.Errorf("expected ErrNoJSONFound, got %v", err)
	}
}

func TestExtractJSONEmpty(t *testing.T) {
	_, err := ExtractJSON("")
	if !errors.Is(err, ErrNoJSONFound) {
		t.Errorf("expected ErrNoJSONFound, got %v", err)
	}
}

func TestExtractJSONTo(t *testing.T) {
	var target struct {
		SubjectCode string `json:"subject_code"`
		Semester    int    `json:"semester"`
		Unit        int    `json:"unit"`
	}
	response := "```json\n{\"subject_code\": \"ME101\", \"semester\": 1, \"unit\": 1}\n```"
	if err := ExtractJSONTo(response, &target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.SubjectCode != "ME101" || target.Semester != 1 || target.Unit != 1 {
		t.Errorf("unexpected target: %+v", target)
	}
}
