package model

import "time"

// Course represents a subject taught by an optional owning faculty
type Course struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Code       string  `gorm:"uniqueIndex;not null" json:"code"`
	Name       string  `gorm:"not null" json:"name"`
	Credits    float64 `gorm:"default:3.0" json:"credits"`
	Department string  `gorm:"index" json:"department"`
	FacultyID  *uint   `json:"faculty_id,omitempty"`

	Faculty     *Faculty     `gorm:"foreignKey:FacultyID" json:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:CourseID" json:"-"`
}

// Enrollment links a student to a course and carries the 4 internal mark
// fields. Uniqueness per (student, course) is by convention only.
type Enrollment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"index;not null" json:"student_id"`
	CourseID  uint `gorm:"index;not null" json:"course_id"`

	MSE1        float64 `gorm:"default:0" json:"mse1"`
	MSE2        float64 `gorm:"default:0" json:"mse2"`
	Assignment1 float64 `gorm:"default:0" json:"assignment1"`
	Assignment2 float64 `gorm:"default:0" json:"assignment2"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
	Course  Course  `gorm:"foreignKey:CourseID" json:"-"`
}

// Assignment is a course deadline posted by faculty
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	CourseID    uint      `gorm:"index;not null" json:"course_id"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

// Attendance is a single presence record for a student in a course
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Present   bool      `json:"present"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	CourseID  uint      `gorm:"index;not null" json:"course_id"`
}
