package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/campushub/portal-api/services/openrouter"
	"github.com/campushub/portal-api/utils"
)

// Classification is the metadata the classifier extracts from a
// document's text
type Classification struct {
	SubjectCode string `json:"subject_code"`
	Semester    int    `json:"semester"`
	Unit        int    `json:"unit"`
}

// DefaultClassification is used when the classifier fails or returns
// garbage, so an unclassifiable upload still lands somewhere findable
func DefaultClassification() Classification {
	return Classification{SubjectCode: "UNKNOWN", Semester: 6, Unit: 1}
}

const classifierPrompt = `You are an academic classifier.

Extract:
- subject_code
- semester
- unit

Return JSON only.

Text:
%s`

// classifierSampleLimit caps how much text is sent to the model; the
// first pages carry the subject header on almost every course document
const classifierSampleLimit = 4000

// ClassifierService asks the LLM which subject, semester and unit a
// document belongs to
type ClassifierService struct {
	llm *openrouter.Client
}

// NewClassifierService creates a new classifier service
func NewClassifierService(llm *openrouter.Client) *ClassifierService {
	return &ClassifierService{llm: llm}
}

// Classify extracts classification metadata from document text. The
// model's output is cleaned of markdown fences before parsing.
func (s *ClassifierService) Classify(ctx context.Context, text string) (Classification, error) {
	if strings.TrimSpace(text) == "" {
		return Classification{}, fmt.Errorf("no text to classify")
	}
	if len(text) > classifierSampleLimit {
		text = text[:classifierSampleLimit]
	}

	output, err := s.llm.ChatCompletion(ctx, []openrouter.Message{
		{Role: "user", Content: fmt.Sprintf(classifierPrompt, text)},
	})
	if err != nil {
		return Classification{}, fmt.Errorf("classifier request failed: %w", err)
	}

	var result Classification
	if err := utils.ExtractJSONTo(output, &result); err != nil {
		return Classification{}, fmt.Errorf("classifier returned unparseable output: %w", err)
	}

	if result.SubjectCode == "" {
		result.SubjectCode = "UNKNOWN"
	}
	if result.Semester <= 0 {
		result.Semester = 6
	}
	if result.Unit <= 0 {
		result.Unit = 1
	}

	log.Printf("Classifier: %s -> semester %d unit %d", result.SubjectCode, result.Semester, result.Unit)
	return result, nil
}
