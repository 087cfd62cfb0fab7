package services

import (
	"strings"
	"testing"

	"github.com/campushub/portal-api/services/extract"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		fileType string
		size     int
		overlap  int
	}{
		{"pdf", 500, 100},
		{"PPTX", 800, 50},
		{"txt", 1000, 150},
		{"csv", 1000, 150},
		{"unknown", 500, 100},
	}
	for _, tt := range tests {
		p := ProfileFor(tt.fileType)
		if p.Size != tt.size || p.Overlap != tt.overlap {
			t.Errorf("ProfileFor(%q) = %+v, want size %d overlap %d", tt.fileType, p, tt.size, tt.overlap)
		}
	}
}

func TestChunkTextShortInput(t *testing.T) {
	chunks := ChunkText("hello world", ChunkProfile{Size: 500, Overlap: 100})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "hello world" {
		t.Errorf("unexpected chunk content: %q", chunks[0])
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	if chunks := ChunkText("   \n\t ", ChunkProfile{Size: 100, Overlap: 10}); chunks != nil {
		t.Errorf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 90) + strings.Repeat("b", 90)
	chunks := ChunkText(text, ChunkProfile{Size: 100, Overlap: 20})
	// Windows at offsets 0 and 80; the second reaches the end of the
	// text, so no trailing window is emitted.
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// Each window starts size-overlap runes after the previous one
	if !strings.HasPrefix(chunks[1], strings.Repeat("a", 10)) {
		t.Errorf("second chunk should begin inside the first window: %q", chunks[1][:20])
	}
	if len(chunks[0]) != 100 {
		t.Errorf("expected full first window, got %d runes", len(chunks[0]))
	}
	if len(chunks[1]) != 100 {
		t.Errorf("expected second window to run to the end, got %d runes", len(chunks[1]))
	}
}

func TestChunkTextReconstruction(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf"
	profile := ChunkProfile{Size: 10, Overlap: 2}
	chunks := ChunkText(text, profile)

	// Dropping each chunk's leading overlap must rebuild the original
	// text, whitespace included.
	rebuilt := chunks[0]
	for _, c := range chunks[1:] {
		runes := []rune(c)
		if len(runes) > profile.Overlap {
			rebuilt += string(runes[profile.Overlap:])
		}
	}
	if rebuilt != text {
		t.Errorf("chunks do not reconstruct the text:\n got %q\nwant %q", rebuilt, text)
	}
}

func TestChunkTextUnicode(t *testing.T) {
	text := strings.Repeat("日", 150)
	chunks := ChunkText(text, ChunkProfile{Size: 100, Overlap: 0})
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got := len([]rune(chunks[0])); got != 100 {
		t.Errorf("expected 100 runes in first chunk, got %d", got)
	}
}

func TestChunkSectionsMonotonicIndex(t *testing.T) {
	sections := []extract.Section{
		{Label: "page_1", Text: strings.Repeat("x", 120)},
		{Label: "page_2", Text: ""},
		{Label: "page_3", Text: strings.Repeat("y", 120)},
	}
	chunks := ChunkSections(sections, ChunkProfile{Size: 100, Overlap: 0})

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d has index %d, want %d", i, c.Index, i)
		}
	}
	if chunks[0].Section != "page_1" || chunks[2].Section != "page_3" {
		t.Errorf("section labels not preserved: %q %q", chunks[0].Section, chunks[2].Section)
	}
}
