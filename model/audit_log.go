package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only action record. Rows are only ever inserted by
// the application; write failures are swallowed by the audit sink.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Timestamp  time.Time      `gorm:"index" json:"timestamp"`
	ActorID    *uint          `json:"actor_id,omitempty"`
	ActorEmail string         `json:"actor_email,omitempty"`
	ActorRole  string         `json:"actor_role,omitempty"` // STUDENT / FACULTY / ADMIN / SYSTEM
	Action     string         `gorm:"index;not null" json:"action"` // e.g. LOGIN, UPLOAD_FILE, SEND_NOTIF
	Resource   string         `json:"resource,omitempty"`           // e.g. "file:42", "course:3"
	Detail     string         `json:"detail,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty"`
	Meta       datatypes.JSON `json:"meta,omitempty"`
}
