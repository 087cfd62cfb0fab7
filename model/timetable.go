package model

// FacultyTimetable is one weekly slot on a faculty member's schedule
type FacultyTimetable struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FacultyID  uint   `gorm:"index;not null" json:"faculty_id"`
	Day        string `json:"day"`       // Monday, Tuesday ...
	TimeSlot   string `json:"time_slot"` // e.g. "9:00 - 10:00"
	CourseName string `json:"course_name"`
	Classroom  string `json:"classroom"`
	Semester   string `json:"semester"` // Sem 3, Sem 5 ...
}

// StudentTimetable is one weekly slot on a semester section's schedule
type StudentTimetable struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Semester    string `gorm:"index" json:"semester"` // "Sem 3"
	Section     string `json:"section"`               // "A"
	Day         string `json:"day"`
	TimeSlot    string `json:"time_slot"`
	Subject     string `json:"subject"`
	FacultyName string `json:"faculty_name"`
	Room        string `json:"room"`
}
