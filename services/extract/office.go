package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DOCX and PPTX are OPC zip containers; the text lives in well-known
// XML parts. Parsing is done with a streaming token walk so namespace
// prefixes don't matter.

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func readZipPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part %s not found", name)
}

type docxParagraph struct {
	Style string
	Text  string
}

// parseDocxParagraphs walks word/document.xml and returns each
// paragraph with its style name
func parseDocxParagraphs(data []byte) ([]docxParagraph, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var paragraphs []docxParagraph
	var current *docxParagraph
	var text strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document.xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				current = &docxParagraph{}
				text.Reset()
			case "pStyle":
				if current != nil {
					for _, attr := range el.Attr {
						if attr.Name.Local == "val" {
							current.Style = attr.Value
						}
					}
				}
			case "t":
				inText = current != nil
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if current != nil {
					current.Text = strings.TrimSpace(text.String())
					paragraphs = append(paragraphs, *current)
					current = nil
				}
			}
		}
	}

	return paragraphs, nil
}

// ExtractDOCX extracts DOCX text grouped by headings. Each heading
// paragraph starts a new section; body text before the first heading
// lands under "section_intro". A document with no headings at all
// degrades to a single "full_text" section.
func ExtractDOCX(content []byte) ([]Section, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX container: %w", err)
	}

	doc, err := readZipPart(zr, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX body: %w", err)
	}

	paragraphs, err := parseDocxParagraphs(doc)
	if err != nil {
		return nil, err
	}

	var sections []Section
	currentHeading := "section_intro"
	var currentLines []string
	sawHeading := false

	flush := func() {
		if len(currentLines) > 0 {
			sections = append(sections, Section{
				Label: currentHeading,
				Text:  strings.Join(currentLines, "\n"),
			})
			currentLines = nil
		}
	}

	for _, p := range paragraphs {
		if strings.HasPrefix(p.Style, "Heading") {
			sawHeading = true
			flush()
			if p.Text != "" {
				currentHeading = p.Text
			}
			continue
		}
		if p.Text != "" {
			currentLines = append(currentLines, p.Text)
		}
	}
	flush()

	if len(sections) == 0 {
		// Headings with no body still carry text worth indexing
		var all []string
		for _, p := range paragraphs {
			if p.Text != "" {
				all = append(all, p.Text)
			}
		}
		if len(all) == 0 {
			return nil, fmt.Errorf("no text found in DOCX")
		}
		return []Section{{Label: "full_text", Text: strings.Join(all, "\n")}}, nil
	}

	// No headings at all: the whole document is one flat section
	if !sawHeading {
		sections[0].Label = "full_text"
	}

	return sections, nil
}

// ExtractPPTX extracts PPTX text slide by slide, labeled by the slide's
// part number so ordering survives empty slides.
func ExtractPPTX(content []byte) ([]Section, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PPTX container: %w", err)
	}

	type slidePart struct {
		num  int
		data []byte
	}
	var slides []slidePart

	for _, f := range zr.File {
		m := slidePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		slides = append(slides, slidePart{num: num, data: data})
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var sections []Section
	for _, s := range slides {
		text, err := parseSlideText(s.data)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", s.num, err)
		}
		if text != "" {
			sections = append(sections, Section{
				Label: fmt.Sprintf("slide_%d", s.num),
				Text:  text,
			})
		}
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("no text found in PPTX")
	}
	return sections, nil
}

// parseSlideText collects every text run in a slide part
func parseSlideText(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var lines []string
	var text strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed slide xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
				text.Reset()
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		case xml.EndElement:
			if el.Name.Local == "t" {
				inText = false
				if line := strings.TrimSpace(text.String()); line != "" {
					lines = append(lines, line)
				}
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}
