package services

import "testing"

func TestReviewTextClean(t *testing.T) {
	result := ReviewText("a perfectly normal lecture transcript")
	if result.Score != 0.85 {
		t.Errorf("expected score 0.85, got %v", result.Score)
	}
	if result.Flags != "" {
		t.Errorf("clean text should carry no flags, got %q", result.Flags)
	}
}

func TestReviewTextFlagsBlocklistedTerm(t *testing.T) {
	result := ReviewText("this note contains a BadWord in the middle")
	if result.Flags != "inappropriate" {
		t.Errorf("expected inappropriate flag, got %q", result.Flags)
	}
	if result.Score != 0.85 {
		t.Errorf("score should stay fixed, got %v", result.Score)
	}
}

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		role       string
		status     string
		visibility string
	}{
		{"faculty", RepoStatusApproved, VisibilityPublic},
		{"FACULTY", RepoStatusApproved, VisibilityPublic},
		{"student", RepoStatusAIReviewed, VisibilityPrivate},
		{"", RepoStatusPending, VisibilityPrivate},
		{"guest", RepoStatusPending, VisibilityPrivate},
	}
	for _, tt := range tests {
		status, visibility := InitialStatus(tt.role)
		if status != tt.status || visibility != tt.visibility {
			t.Errorf("InitialStatus(%q) = (%q, %q), want (%q, %q)",
				tt.role, status, visibility, tt.status, tt.visibility)
		}
	}
}
