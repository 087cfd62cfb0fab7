package model

import (
	"time"
)

// Role identifies which side of the portal an account belongs to
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
	RoleAdmin   Role = "ADMIN"
)

// Status is the account lifecycle state. Accounts are never hard-deleted;
// removal suspends them instead.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// User represents a portal account with its lockout counters
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         Role       `gorm:"type:varchar(20);not null" json:"role"`
	Status       Status     `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	FailedAttempts int      `gorm:"default:0" json:"-"`
	LockoutUntil *time.Time `json:"-"`
}

// Student is the 1:1 profile for a STUDENT account
type Student struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	USN           string `gorm:"uniqueIndex;not null" json:"usn"`
	Name          string `gorm:"not null" json:"name"`
	Branch        string `json:"branch"`
	Semester      int    `json:"semester"`
	Department    string `gorm:"index" json:"department"` // e.g. "CSE", "ISE"
	PersonalEmail string `json:"personal_email,omitempty"`
	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`

	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:StudentID" json:"-"`
	Pins        []StudentPin `gorm:"foreignKey:StudentID" json:"-"`
}

// Faculty is the 1:1 profile for a FACULTY account
type Faculty struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	EmployeeID string `gorm:"uniqueIndex;not null" json:"employee_id"`
	Name       string `gorm:"not null" json:"name"`
	Department string `json:"department"`
	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`

	User      User               `gorm:"foreignKey:UserID" json:"-"`
	Courses   []Course           `gorm:"foreignKey:FacultyID" json:"-"`
	Timetable []FacultyTimetable `gorm:"foreignKey:FacultyID" json:"-"`
}

// Admin is the 1:1 profile for an ADMIN account
type Admin struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Department string `json:"department"`
	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
