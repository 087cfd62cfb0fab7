package services

import (
	"strings"

	"github.com/campushub/portal-api/services/extract"
)

// ChunkProfile is a chunk size/overlap pair keyed by file type. Dense
// formats get smaller windows, flat text gets larger ones.
type ChunkProfile struct {
	Size    int
	Overlap int
}

var chunkProfiles = map[string]ChunkProfile{
	"pdf":  {Size: 500, Overlap: 100},
	"docx": {Size: 500, Overlap: 100},
	"png":  {Size: 500, Overlap: 100},
	"jpg":  {Size: 500, Overlap: 100},
	"jpeg": {Size: 500, Overlap: 100},
	"pptx": {Size: 800, Overlap: 50},
	"txt":  {Size: 1000, Overlap: 150},
	"csv":  {Size: 1000, Overlap: 150},
}

var defaultChunkProfile = ChunkProfile{Size: 500, Overlap: 100}

// ProfileFor returns the chunking profile for a file type
func ProfileFor(fileType string) ChunkProfile {
	if p, ok := chunkProfiles[strings.ToLower(fileType)]; ok {
		return p
	}
	return defaultChunkProfile
}

// TextChunk is one retrievable unit of a document
type TextChunk struct {
	Index   int
	Section string
	Content string
}

// ChunkText splits text into overlapping character windows. The final
// window may be shorter than the profile size; whitespace-only windows
// are dropped.
func ChunkText(text string, profile ChunkProfile) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	size := profile.Size
	if size <= 0 {
		size = defaultChunkProfile.Size
	}
	overlap := profile.Overlap
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	step := size - overlap

	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		// The window is kept verbatim so overlapping chunks still
		// concatenate back to the section text.
		chunk := string(runes[start:end])
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// ChunkSections chunks each section independently while keeping one
// monotonic chunk index across the whole document, so chunk order
// reflects document order even across section boundaries.
func ChunkSections(sections []extract.Section, profile ChunkProfile) []TextChunk {
	var out []TextChunk
	index := 0
	for _, sec := range sections {
		for _, content := range ChunkText(sec.Text, profile) {
			out = append(out, TextChunk{
				Index:   index,
				Section: sec.Label,
				Content: content,
			})
			index++
		}
	}
	return out
}
