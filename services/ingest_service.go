package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/campushub/portal-api/database"
	"github.com/campushub/portal-api/services/extract"
)

// IngestService runs the repository-side upload pipeline: persist,
// extract, classify, moderate, record, index.
type IngestService struct {
	repo       *database.RepoStore
	extractor  *extract.Registry
	classifier *ClassifierService
	rag        *RAGService
	uploadRoot string
}

// NewIngestService creates a new ingest service
func NewIngestService(repo *database.RepoStore, extractor *extract.Registry, classifier *ClassifierService, rag *RAGService, uploadRoot string) *IngestService {
	return &IngestService{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
		rag:        rag,
		uploadRoot: uploadRoot,
	}
}

// IngestResult summarizes one ingested file
type IngestResult struct {
	FileID     int64          `json:"file_id"`
	Filename   string         `json:"filename"`
	FileType   string         `json:"file_type"`
	Metadata   Classification `json:"metadata"`
	Status     string         `json:"status"`
	Visibility string         `json:"visibility"`
	ChunkCount int            `json:"chunk_count"`
}

// SkippedFile records a batch-upload file that could not be ingested
type SkippedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Ingest runs the full pipeline for one uploaded file. Classification
// failure falls back to the default placement instead of rejecting the
// upload; indexing failure does reject, since an unindexed file is
// invisible to every retrieval path.
func (s *IngestService) Ingest(ctx context.Context, content []byte, filename, role, ownerID string) (*IngestResult, error) {
	if !extract.IsSupported(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}

	// Keep the original bytes on disk alongside the index
	savePath := filepath.Join(s.uploadRoot, filepath.Base(filename))
	if err := os.MkdirAll(s.uploadRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(savePath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileType := extract.FileType(filename)

	sections, err := s.extractor.Extract(ctx, content, filename)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	var fullText string
	for _, sec := range sections {
		fullText += sec.Text + "\n"
	}

	meta, err := s.classifier.Classify(ctx, fullText)
	if err != nil {
		log.Printf("Ingest: classification failed for %s, using defaults: %v", filename, err)
		meta = DefaultClassification()
	}

	status, visibility := InitialStatus(role)

	var score float64
	var flags string
	if role == "student" {
		review := ReviewText(fullText)
		score = review.Score
		flags = review.Flags
	}

	fileID, err := s.repo.InsertFile(ctx, &database.RepoFile{
		Filename:        filepath.Base(filename),
		FilePath:        savePath,
		FileType:        fileType,
		SubjectCode:     meta.SubjectCode,
		Semester:        meta.Semester,
		Unit:            meta.Unit,
		UploaderRole:    role,
		UploaderID:      ownerID,
		Status:          status,
		Visibility:      visibility,
		ModerationScore: score,
		ModerationFlags: flags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record file: %w", err)
	}

	chunkCount, err := s.rag.IndexDocument(ctx, fileID, sections, fileType)
	if err != nil {
		return nil, fmt.Errorf("indexing failed: %w", err)
	}

	return &IngestResult{
		FileID:     fileID,
		Filename:   filepath.Base(filename),
		FileType:   fileType,
		Metadata:   meta,
		Status:     status,
		Visibility: visibility,
		ChunkCount: chunkCount,
	}, nil
}

// IngestBatch ingests several files, skipping the ones that fail so one
// bad file never sinks the whole batch
func (s *IngestService) IngestBatch(ctx context.Context, files map[string][]byte, role, ownerID string) ([]IngestResult, []SkippedFile) {
	var results []IngestResult
	var skipped []SkippedFile

	for filename, content := range files {
		if !extract.IsSupported(filename) {
			skipped = append(skipped, SkippedFile{Filename: filename, Reason: "Unsupported file type"})
			continue
		}

		res, err := s.Ingest(ctx, content, filename, role, ownerID)
		if err != nil {
			skipped = append(skipped, SkippedFile{Filename: filename, Reason: err.Error()})
			continue
		}
		results = append(results, *res)
	}

	return results, skipped
}

// ClassifyOnly extracts and classifies without persisting anything.
// The portal calls this to decide where a student upload should be
// filed before it is approved.
func (s *IngestService) ClassifyOnly(ctx context.Context, content []byte, filename string) (Classification, error) {
	text, err := s.extractor.ExtractText(ctx, content, filename)
	if err != nil {
		return Classification{}, fmt.Errorf("text extraction failed: %w", err)
	}
	return s.classifier.Classify(ctx, text)
}

// Review applies an admin decision to a student upload
func (s *IngestService) Review(ctx context.Context, fileID int64, approve bool) error {
	if approve {
		return s.repo.UpdateFileStatus(ctx, fileID, RepoStatusApproved, VisibilityPeer)
	}
	file, err := s.repo.GetFile(ctx, fileID)
	if err != nil {
		return err
	}
	return s.repo.UpdateFileStatus(ctx, fileID, RepoStatusRejected, file.Visibility)
}
