package cron

import (
	"testing"

	"github.com/campushub/portal-api/model"
)

func TestMissingFromRepository(t *testing.T) {
	files := []model.UploadedFile{
		{Filename: "forwarded.pdf", UploadedByRole: model.RoleStudent},
		{Filename: "lost.pdf", UploadedByRole: model.RoleStudent},
		{Filename: "lecture.pdf", UploadedByRole: model.RoleFaculty},
	}
	present := map[string]struct{}{
		"forwarded.pdf": {},
	}

	missing := missingFromRepository(files, present)
	if len(missing) != 1 {
		t.Fatalf("expected 1 missing file, got %d", len(missing))
	}
	if missing[0].Filename != "lost.pdf" {
		t.Errorf("expected lost.pdf to need resubmission, got %q", missing[0].Filename)
	}
}

func TestMissingFromRepositoryAllPresent(t *testing.T) {
	files := []model.UploadedFile{
		{Filename: "a.pdf", UploadedByRole: model.RoleStudent},
	}
	present := map[string]struct{}{"a.pdf": {}}

	if missing := missingFromRepository(files, present); missing != nil {
		t.Errorf("expected no files to resubmit, got %d", len(missing))
	}
}
