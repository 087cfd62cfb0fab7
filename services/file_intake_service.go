package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services/storage"
	"gorm.io/gorm"
)

// RepositoryIngestor is the slice of the repository pipeline the portal
// intake calls into. Both stores live in this process, so the bridge is
// a direct call; the two databases still commit independently.
type RepositoryIngestor interface {
	ClassifyOnly(ctx context.Context, content []byte, filename string) (Classification, error)
	Ingest(ctx context.Context, content []byte, filename, role, ownerID string) (*IngestResult, error)
}

// FileIntakeService is the portal-side study material pipeline. Faculty
// uploads are trusted and filed immediately; student uploads are
// classified, parked as PENDING and wait for an admin decision.
type FileIntakeService struct {
	db         *gorm.DB
	repository RepositoryIngestor
	archive    *storage.SpacesArchive
	uploadRoot string
}

// NewFileIntakeService creates a new file intake service. The archive
// mirror is optional; pass nil to keep material local-only.
func NewFileIntakeService(db *gorm.DB, repository RepositoryIngestor, archive *storage.SpacesArchive, uploadRoot string) *FileIntakeService {
	return &FileIntakeService{
		db:         db,
		repository: repository,
		archive:    archive,
		uploadRoot: uploadRoot,
	}
}

// mirrorToArchive copies accepted material into the Spaces bucket.
// Failures are logged, never surfaced.
func (s *FileIntakeService) mirrorToArchive(ctx context.Context, path string, content []byte) {
	if s.archive == nil {
		return
	}
	key := filepath.ToSlash(path)
	if _, err := s.archive.Mirror(ctx, key, content); err != nil {
		log.Printf("File intake: archive mirror failed for %s: %v", key, err)
	}
}

// SortedPath builds the canonical storage path for classified material
func (s *FileIntakeService) SortedPath(semester, subjectCode, unit, filename string) string {
	return filepath.Join(s.uploadRoot, semester, subjectCode, "unit_"+unit, filepath.Base(filename))
}

func (s *FileIntakeService) saveTo(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// FacultyUpload files material directly under the declared subject and
// unit. The row is created APPROVED and students are notified.
func (s *FileIntakeService) FacultyUpload(ctx context.Context, content []byte, filename, semester, subjectCode, unit string, uploader *model.User) (*model.UploadedFile, error) {
	path := s.SortedPath(semester, subjectCode, unit, filename)
	if err := s.saveTo(path, content); err != nil {
		return nil, err
	}

	file := &model.UploadedFile{
		Filename:       filepath.Base(filename),
		FilePath:       path,
		SubjectCode:    subjectCode,
		Unit:           unit,
		Semester:       semester,
		UploadedByID:   uploader.ID,
		UploadedByRole: uploader.Role,
		Status:         model.FileApproved,
		Timestamp:      time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	s.mirrorToArchive(ctx, path, content)

	notif := &model.Notification{
		Title:     "New study material: " + subjectCode,
		Message:   fmt.Sprintf("%s was added to %s unit %s.", file.Filename, subjectCode, unit),
		NotifType: model.NotifSent,
		Timestamp: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(notif).Error; err != nil {
		log.Printf("File intake: failed to create notification for %s: %v", file.Filename, err)
	}

	return file, nil
}

// StudentUpload stores the file temporarily, asks the repository
// pipeline where it belongs, then moves it into the sorted tree as a
// PENDING row. Classification failure files it under the placeholder
// location rather than rejecting the upload.
func (s *FileIntakeService) StudentUpload(ctx context.Context, content []byte, filename string, uploader *model.User) (*model.UploadedFile, error) {
	tempPath := filepath.Join(s.uploadRoot, "temp", filepath.Base(filename))
	if err := s.saveTo(tempPath, content); err != nil {
		return nil, err
	}

	meta, err := s.repository.ClassifyOnly(ctx, content, filename)
	if err != nil {
		log.Printf("File intake: classification failed for %s, using placeholder: %v", filename, err)
		meta = DefaultClassification()
	}

	semester := strconv.Itoa(meta.Semester)
	unit := strconv.Itoa(meta.Unit)

	path := s.SortedPath(semester, meta.SubjectCode, unit, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return nil, fmt.Errorf("failed to move file into place: %w", err)
	}

	file := &model.UploadedFile{
		Filename:       filepath.Base(filename),
		FilePath:       path,
		SubjectCode:    meta.SubjectCode,
		Unit:           unit,
		Semester:       semester,
		UploadedByID:   uploader.ID,
		UploadedByRole: uploader.Role,
		Status:         model.FilePending,
		Timestamp:      time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	s.notifyCourseOwner(ctx, file)

	return file, nil
}

// notifyCourseOwner raises a review request addressed to the faculty
// who owns the classified subject's course
func (s *FileIntakeService) notifyCourseOwner(ctx context.Context, file *model.UploadedFile) {
	var senderID *uint
	var course model.Course
	err := s.db.WithContext(ctx).Where("code = ?", file.SubjectCode).First(&course).Error
	if err == nil && course.FacultyID != nil {
		senderID = course.FacultyID
	}

	notif := &model.Notification{
		Title:     "Student upload awaiting review",
		Message:   fmt.Sprintf("%s was uploaded for %s and needs approval.", file.Filename, file.SubjectCode),
		Priority:  "High",
		NotifType: model.NotifHOD,
		SenderID:  senderID,
		Timestamp: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(notif).Error; err != nil {
		log.Printf("File intake: failed to create review notification: %v", err)
	}
}

// PendingFiles lists student uploads waiting for an admin decision
func (s *FileIntakeService) PendingFiles(ctx context.Context) ([]model.UploadedFile, error) {
	var files []model.UploadedFile
	err := s.db.WithContext(ctx).
		Where("status = ?", model.FilePending).
		Order("timestamp ASC").
		Find(&files).Error
	return files, err
}

// ApproveFile marks a pending upload APPROVED and hands it to the
// smart repository pipeline under the faculty role. The hand-off is
// best-effort: a repository failure must not undo the approval, and
// the resubmission sweep picks up anything that slipped through.
func (s *FileIntakeService) ApproveFile(ctx context.Context, fileID uint) (*model.UploadedFile, error) {
	var file model.UploadedFile
	if err := s.db.WithContext(ctx).First(&file, fileID).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&file).Update("status", model.FileApproved).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	file.Status = model.FileApproved

	content, err := os.ReadFile(file.FilePath)
	if err != nil {
		log.Printf("File intake: cannot read %s for repository submission: %v", file.FilePath, err)
		return &file, nil
	}
	s.mirrorToArchive(ctx, file.FilePath, content)
	ownerID := strconv.FormatUint(uint64(file.UploadedByID), 10)
	// Ingested under the faculty role so the file is indexed and public
	// without a second review.
	if _, err := s.repository.Ingest(ctx, content, file.Filename, "faculty", ownerID); err != nil {
		log.Printf("File intake: repository submission failed for %s: %v", file.Filename, err)
	}

	return &file, nil
}

// DenyFile marks a pending upload DENIED
func (s *FileIntakeService) DenyFile(ctx context.Context, fileID uint) (*model.UploadedFile, error) {
	var file model.UploadedFile
	if err := s.db.WithContext(ctx).First(&file, fileID).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&file).Update("status", model.FileDenied).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	file.Status = model.FileDenied
	return &file, nil
}
