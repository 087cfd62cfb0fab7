package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/campushub/portal-api/database"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/utils"
	"gorm.io/gorm"
)

// CronManager manages all scheduled background jobs
type CronManager struct {
	cron       *cron.Cron
	db         *gorm.DB
	repo       *database.RepoStore
	ingest     services.RepositoryIngestor
	rag        *services.RAGService
	audit      *services.AuditService
	uploadRoot string
	jobLog     *utils.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, repo *database.RepoStore, ingest services.RepositoryIngestor, rag *services.RAGService, audit *services.AuditService, uploadRoot string) *CronManager {
	// Seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:       c,
		db:         db,
		repo:       repo,
		ingest:     ingest,
		rag:        rag,
		audit:      audit,
		uploadRoot: uploadRoot,
		jobLog:     utils.NewLogger(),
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 30 minutes: drop stale temp uploads
	_, err := m.cron.AddFunc("0 */30 * * * *", func() {
		m.logJobStart("cleanup_temp_uploads")
		m.CleanupTempUploads()
	})
	if err != nil {
		return err
	}

	// Every hour: re-index repository files that lost their chunks
	_, err = m.cron.AddFunc("0 0 * * * *", func() {
		m.logJobStart("reindex_missing_chunks")
		m.ReindexMissingChunks()
	})
	if err != nil {
		return err
	}

	// Every 6 hours: re-submit approved student uploads whose repository
	// hand-off failed
	_, err = m.cron.AddFunc("0 0 */6 * * *", func() {
		m.logJobStart("resubmit_approved_files")
		m.ResubmitApprovedFiles()
	})
	if err != nil {
		return err
	}

	// Daily at 2 AM: prune old audit entries
	_, err = m.cron.AddFunc("0 0 2 * * *", func() {
		m.logJobStart("prune_audit_log")
		m.PruneAuditLog()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
	m.jobLog.Log("job started: " + jobName)
}

func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)
	m.jobLog.Log("job completed: " + jobName + " - " + message)
}

func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)
	m.jobLog.Log("job failed: " + jobName + " - " + err.Error())
}
