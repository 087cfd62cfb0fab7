package model

import "time"

// NotifType separates broadcast announcements from HOD review requests
type NotifType string

const (
	NotifHOD  NotifType = "HOD"  // routed to the course's owning faculty
	NotifSent NotifType = "SENT" // broadcast to the student audience
)

// Notification is an announcement or review request. SenderID is nil for
// admin announcements without a faculty profile.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `json:"message"`
	Priority  string    `gorm:"default:'Medium'" json:"priority"` // High / Medium / Low
	NotifType NotifType `gorm:"type:varchar(10);index" json:"notif_type"`
	SenderID  *uint     `json:"sender_id,omitempty"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	Sender *Faculty `gorm:"foreignKey:SenderID" json:"-"`
}

// StudentPin is a student's personal reminder shown on the dashboard
type StudentPin struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"index;not null" json:"student_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
}
