package services

import (
	"path/filepath"
	"testing"
)

// The intake bridge rides the in-process ingest pipeline, not a
// network client; the pipeline must keep satisfying the bridge.
var _ RepositoryIngestor = (*IngestService)(nil)

func TestSortedPath(t *testing.T) {
	s := &FileIntakeService{uploadRoot: "uploads"}

	tests := []struct {
		semester, subject, unit, filename string
		want                              string
	}{
		{"6", "CS601", "2", "notes.pdf", filepath.Join("uploads", "6", "CS601", "unit_2", "notes.pdf")},
		{"6", "CS601", "2", "../../etc/passwd", filepath.Join("uploads", "6", "CS601", "unit_2", "passwd")},
		{"1", "UNKNOWN", "1", "scan.png", filepath.Join("uploads", "1", "UNKNOWN", "unit_1", "scan.png")},
	}
	for _, tt := range tests {
		if got := s.SortedPath(tt.semester, tt.subject, tt.unit, tt.filename); got != tt.want {
			t.Errorf("SortedPath(%q, %q, %q, %q) = %q, want %q",
				tt.semester, tt.subject, tt.unit, tt.filename, got, tt.want)
		}
	}
}
