package model

import "time"

// FileStatus is the moderation state of an uploaded file
type FileStatus string

const (
	FilePending  FileStatus = "PENDING"
	FileApproved FileStatus = "APPROVED"
	FileDenied   FileStatus = "DENIED"
)

// UploadedFile is a portal-side metadata row for a stored upload. Faculty
// uploads are created APPROVED; student uploads start PENDING and only an
// admin action moves them to APPROVED or DENIED.
type UploadedFile struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Filename       string     `gorm:"not null" json:"filename"`
	FilePath       string     `gorm:"not null" json:"file_path"`
	SubjectCode    string     `gorm:"index" json:"subject_code"`
	Unit           string     `json:"unit"`
	Semester       string     `json:"semester"`
	UploadedByID   uint       `gorm:"index;not null" json:"uploaded_by_id"`
	UploadedByRole Role       `gorm:"type:varchar(20)" json:"uploaded_by_role"`
	Status         FileStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	Timestamp      time.Time  `json:"timestamp"`

	UploadedBy User `gorm:"foreignKey:UploadedByID" json:"-"`
}
