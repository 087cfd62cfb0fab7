package cron

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/services/extract"
)

const (
	tempUploadMaxAge = 24 * time.Hour
	auditRetention   = 90 * 24 * time.Hour
)

// CleanupTempUploads removes student uploads that were parked in the
// temp directory but never moved into the sorted tree, usually because
// the request died between save and classify.
func (m *CronManager) CleanupTempUploads() {
	jobName := "cleanup_temp_uploads"
	tempDir := filepath.Join(m.uploadRoot, "temp")

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		if os.IsNotExist(err) {
			m.logJobComplete(jobName, "No temp directory")
			return
		}
		m.logJobError(jobName, fmt.Errorf("failed to read temp dir: %w", err))
		return
	}

	cutoff := time.Now().Add(-tempUploadMaxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(tempDir, entry.Name())); err == nil {
				removed++
			}
		}
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d stale temp files", removed))
}

// ReindexMissingChunks finds repository files with no chunks in the
// store and re-runs extraction and indexing for them. A file loses its
// chunks when indexing failed mid-ingest or an operator wiped the
// chunk table.
func (m *CronManager) ReindexMissingChunks() {
	jobName := "reindex_missing_chunks"
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	files, err := m.repo.ListFiles(ctx, "", "", 500)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to list repository files: %w", err))
		return
	}

	registry := extract.NewRegistry(extract.NewOCRClient())
	reindexed := 0
	failed := 0

	for _, f := range files {
		if f.Status == services.RepoStatusRejected {
			continue
		}

		count, err := m.repo.CountChunksForFile(ctx, f.ID)
		if err != nil || count > 0 {
			continue
		}

		content, err := os.ReadFile(f.FilePath)
		if err != nil {
			failed++
			continue
		}

		sections, err := registry.Extract(ctx, content, f.Filename)
		if err != nil {
			failed++
			continue
		}

		if _, err := m.rag.IndexDocument(ctx, f.ID, sections, f.FileType); err != nil {
			failed++
			continue
		}
		reindexed++
	}

	m.logJobComplete(jobName, fmt.Sprintf("Reindexed %d files, %d failures", reindexed, failed))
}

// missingFromRepository filters approved student uploads down to the
// ones whose filename the repository has never recorded
func missingFromRepository(files []model.UploadedFile, present map[string]struct{}) []model.UploadedFile {
	var missing []model.UploadedFile
	for _, f := range files {
		if f.UploadedByRole != model.RoleStudent {
			continue
		}
		if _, ok := present[f.Filename]; ok {
			continue
		}
		missing = append(missing, f)
	}
	return missing
}

// ResubmitApprovedFiles forwards approved student uploads that never
// reached the repository, closing the window left open when the
// approval-time hand-off failed. The portal and repository commits stay
// independent; this sweep is the reconciliation between them.
func (m *CronManager) ResubmitApprovedFiles() {
	jobName := "resubmit_approved_files"
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var files []model.UploadedFile
	if err := m.db.WithContext(ctx).Where("status = ?", model.FileApproved).Find(&files).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to list approved uploads: %w", err))
		return
	}

	present, err := m.repo.Filenames(ctx)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to list repository files: %w", err))
		return
	}

	submitted := 0
	failed := 0
	for _, f := range missingFromRepository(files, present) {
		content, err := os.ReadFile(f.FilePath)
		if err != nil {
			failed++
			continue
		}
		ownerID := strconv.FormatUint(uint64(f.UploadedByID), 10)
		if _, err := m.ingest.Ingest(ctx, content, f.Filename, "faculty", ownerID); err != nil {
			failed++
			continue
		}
		submitted++
	}

	m.logJobComplete(jobName, fmt.Sprintf("Resubmitted %d files, %d failures", submitted, failed))
}

// PruneAuditLog deletes audit entries past the retention window
func (m *CronManager) PruneAuditLog() {
	jobName := "prune_audit_log"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := m.audit.Prune(ctx, auditRetention)
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Pruned %d audit entries", removed))
}
