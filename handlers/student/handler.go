package student

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/utils/middleware"
	"github.com/campushub/portal-api/utils/response"
	"gorm.io/gorm"
)

// StudentHandler serves the student side of the portal
type StudentHandler struct {
	db     *gorm.DB
	intake *services.FileIntakeService
	audit  *services.AuditService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB, intake *services.FileIntakeService, audit *services.AuditService) *StudentHandler {
	return &StudentHandler{db: db, intake: intake, audit: audit}
}

// currentStudent resolves the authenticated account's student profile
func (h *StudentHandler) currentStudent(c *fiber.Ctx) (*model.Student, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var student model.Student
	if err := h.db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// CourseMarks is one course's internal marks on the dashboard
type CourseMarks struct {
	CourseCode  string  `json:"course_code"`
	CourseName  string  `json:"course_name"`
	MSE1        float64 `json:"mse1"`
	MSE2        float64 `json:"mse2"`
	Assignment1 float64 `json:"assignment1"`
	Assignment2 float64 `json:"assignment2"`
}

// AttendanceSummary is per-course attendance percentage
type AttendanceSummary struct {
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Total      int     `json:"total_classes"`
	Attended   int     `json:"attended"`
	Percentage float64 `json:"percentage"`
}

// DashboardResponse aggregates everything the student landing page needs
type DashboardResponse struct {
	Profile       model.Student            `json:"profile"`
	Marks         []CourseMarks            `json:"marks"`
	Attendance    []AttendanceSummary      `json:"attendance"`
	Timetable     []model.StudentTimetable `json:"timetable"`
	Notifications []model.Notification     `json:"notifications"`
	Pins          []model.StudentPin       `json:"pins"`
}

// Dashboard returns the student's aggregated dashboard
func (h *StudentHandler) Dashboard(c *fiber.Ctx) error {
	student, err := h.currentStudent(c)
	if err != nil {
		return response.NotFound(c, "Student profile not found")
	}

	var enrollments []model.Enrollment
	if err := h.db.Preload("Course").Where("student_id = ?", student.ID).Find(&enrollments).Error; err != nil {
		return response.InternalServerError(c, "Failed to load enrollments")
	}

	marks := make([]CourseMarks, 0, len(enrollments))
	attendance := make([]AttendanceSummary, 0, len(enrollments))
	for _, e := range enrollments {
		marks = append(marks, CourseMarks{
			CourseCode:  e.Course.Code,
			CourseName:  e.Course.Name,
			MSE1:        e.MSE1,
			MSE2:        e.MSE2,
			Assignment1: e.Assignment1,
			Assignment2: e.Assignment2,
		})

		var total, attended int64
		h.db.Model(&model.Attendance{}).
			Where("student_id = ? AND course_id = ?", student.ID, e.CourseID).
			Count(&total)
		h.db.Model(&model.Attendance{}).
			Where("student_id = ? AND course_id = ? AND present = ?", student.ID, e.CourseID, true).
			Count(&attended)

		pct := 0.0
		if total > 0 {
			pct = float64(attended) / float64(total) * 100
		}
		attendance = append(attendance, AttendanceSummary{
			CourseCode: e.Course.Code,
			CourseName: e.Course.Name,
			Total:      int(total),
			Attended:   int(attended),
			Percentage: pct,
		})
	}

	var timetable []model.StudentTimetable
	h.db.Where("semester = ?", semesterLabel(student.Semester)).Find(&timetable)

	var notifications []model.Notification
	h.db.Where("notif_type = ?", model.NotifSent).
		Order("timestamp DESC").
		Limit(20).
		Find(&notifications)

	var pins []model.StudentPin
	h.db.Where("student_id = ?", student.ID).Order("due_date ASC").Find(&pins)

	return response.Success(c, DashboardResponse{
		Profile:       *student,
		Marks:         marks,
		Attendance:    attendance,
		Timetable:     timetable,
		Notifications: notifications,
		Pins:          pins,
	})
}

func semesterLabel(sem int) string {
	return "Sem " + strconv.Itoa(sem)
}
