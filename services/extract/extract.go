package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Section is one labeled region of extracted text, e.g. a PDF page, a
// slide, or a heading-delimited block
type Section struct {
	Label string `json:"section"`
	Text  string `json:"content"`
}

// supportedExtensions lists the file types the repository can index
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".txt":  true,
	".csv":  true,
}

// IsSupported reports whether a filename has an indexable extension
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FileType returns the lowercase extension without the dot, e.g. "pdf"
func FileType(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// Registry routes file content to the right extractor by extension
type Registry struct {
	pdf *PDFExtractor
	ocr *OCRClient
}

// NewRegistry creates an extraction registry. The OCR client may be nil
// when no OCR service is configured; image extraction then fails with a
// clear error instead of a panic.
func NewRegistry(ocr *OCRClient) *Registry {
	return &Registry{
		pdf: NewPDFExtractor(),
		ocr: ocr,
	}
}

// Extract returns the structured sections of a document. The section
// labels depend on the file type: pages for PDFs, slides for
// presentations, headings for DOCX, a single block for flat formats.
func (r *Registry) Extract(ctx context.Context, content []byte, filename string) ([]Section, error) {
	switch FileType(filename) {
	case "pdf":
		return r.pdf.ExtractSections(content)
	case "docx":
		return ExtractDOCX(content)
	case "pptx":
		return ExtractPPTX(content)
	case "png", "jpg", "jpeg":
		if r.ocr == nil {
			return nil, fmt.Errorf("no OCR service configured for image extraction")
		}
		return r.ocr.ExtractImage(ctx, content, filename)
	case "txt":
		return []Section{{Label: "full_text", Text: string(content)}}, nil
	case "csv":
		return []Section{{Label: "csv_data", Text: string(content)}}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// ExtractText returns the document's text as one flat string
func (r *Registry) ExtractText(ctx context.Context, content []byte, filename string) (string, error) {
	sections, err := r.Extract(ctx, content, filename)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s.Text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
