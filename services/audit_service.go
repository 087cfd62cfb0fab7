package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campushub/portal-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService appends security-relevant events to the audit trail.
// Recording is observational: call sites discard the returned error so
// an audit outage never blocks the action being audited.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditEntry describes one event to record
type AuditEntry struct {
	ActorID    *uint
	ActorEmail string
	ActorRole  string
	Action     string
	Resource   string
	Detail     string
	IPAddress  string
	Meta       map[string]interface{}
}

// Record appends an entry to the audit log
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) error {
	var meta datatypes.JSON
	if entry.Meta != nil {
		if data, err := json.Marshal(entry.Meta); err == nil {
			meta = datatypes.JSON(data)
		}
	}

	row := &model.AuditLog{
		Timestamp:  time.Now(),
		ActorID:    entry.ActorID,
		ActorEmail: entry.ActorEmail,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		Resource:   entry.Resource,
		Detail:     entry.Detail,
		IPAddress:  entry.IPAddress,
		Meta:       meta,
	}
	return s.db.WithContext(ctx).Create(row).Error
}

// Feed returns the most recent audit entries
func (s *AuditService) Feed(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []model.AuditLog
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// Prune deletes audit entries older than the retention window and
// returns how many were removed
func (s *AuditService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := s.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&model.AuditLog{})
	return result.RowsAffected, result.Error
}
