package extract

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildZip(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip part %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip part %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

const docxWithHeadings = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Preamble text before any heading.</w:t></w:r></w:p>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Unit One</w:t></w:r></w:p>
    <w:p><w:r><w:t>First unit body.</w:t></w:r></w:p>
    <w:p><w:r><w:t>More first unit body.</w:t></w:r></w:p>
    <w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Unit Two</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second unit body.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestExtractDOCXGroupsByHeadings(t *testing.T) {
	content := buildZip(t, map[string]string{"word/document.xml": docxWithHeadings})

	sections, err := ExtractDOCX(content)
	if err != nil {
		t.Fatalf("ExtractDOCX failed: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].Label != "section_intro" {
		t.Errorf("first section should be the intro, got %q", sections[0].Label)
	}
	if sections[1].Label != "Unit One" {
		t.Errorf("expected heading label, got %q", sections[1].Label)
	}
	if sections[1].Text != "First unit body.\nMore first unit body." {
		t.Errorf("unexpected section text: %q", sections[1].Text)
	}
	if sections[2].Label != "Unit Two" || sections[2].Text != "Second unit body." {
		t.Errorf("unexpected final section: %+v", sections[2])
	}
}

func TestExtractDOCXNoHeadingsFallsBack(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Line one.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Line two.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	content := buildZip(t, map[string]string{"word/document.xml": doc})

	sections, err := ExtractDOCX(content)
	if err != nil {
		t.Fatalf("ExtractDOCX failed: %v", err)
	}
	if len(sections) != 1 || sections[0].Label != "full_text" {
		t.Fatalf("expected single full_text section, got %+v", sections)
	}
	if sections[0].Text != "Line one.\nLine two." {
		t.Errorf("unexpected text: %q", sections[0].Text)
	}
}

func TestExtractDOCXInvalidContainer(t *testing.T) {
	if _, err := ExtractDOCX([]byte("not a zip file")); err == nil {
		t.Error("expected error for invalid container")
	}
}

func TestExtractPPTXOrdersSlides(t *testing.T) {
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <a:t>` + text + `</a:t>
</p:sld>`
	}
	content := buildZip(t, map[string]string{
		"ppt/slides/slide10.xml": slide("Tenth slide"),
		"ppt/slides/slide2.xml":  slide("Second slide"),
		"ppt/slides/slide1.xml":  slide("First slide"),
	})

	sections, err := ExtractPPTX(content)
	if err != nil {
		t.Fatalf("ExtractPPTX failed: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	wantLabels := []string{"slide_1", "slide_2", "slide_10"}
	wantTexts := []string{"First slide", "Second slide", "Tenth slide"}
	for i := range sections {
		if sections[i].Label != wantLabels[i] {
			t.Errorf("section %d label = %q, want %q", i, sections[i].Label, wantLabels[i])
		}
		if sections[i].Text != wantTexts[i] {
			t.Errorf("section %d text = %q, want %q", i, sections[i].Text, wantTexts[i])
		}
	}
}

func TestExtractPPTXSkipsEmptySlides(t *testing.T) {
	content := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": `<?xml version="1.0"?><p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"></p:sld>`,
		"ppt/slides/slide2.xml": `<?xml version="1.0"?><p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:t>Only slide with text</a:t></p:sld>`,
	})

	sections, err := ExtractPPTX(content)
	if err != nil {
		t.Fatalf("ExtractPPTX failed: %v", err)
	}
	if len(sections) != 1 || sections[0].Label != "slide_2" {
		t.Fatalf("expected only slide_2, got %+v", sections)
	}
}

func TestIsSupported(t *testing.T) {
	supported := []string{"notes.pdf", "deck.PPTX", "scan.jpeg", "data.csv", "plain.txt", "doc.docx", "img.png"}
	for _, name := range supported {
		if !IsSupported(name) {
			t.Errorf("expected %q to be supported", name)
		}
	}
	unsupported := []string{"archive.zip", "video.mp4", "noextension"}
	for _, name := range unsupported {
		if IsSupported(name) {
			t.Errorf("expected %q to be unsupported", name)
		}
	}
}
