package faculty

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/response"
)

// ownedCourse loads a course and verifies it belongs to the caller
func (h *FacultyHandler) ownedCourse(c *fiber.Ctx, courseID int) (*model.Course, error) {
	faculty, err := h.currentFaculty(c)
	if err != nil {
		return nil, err
	}
	var course model.Course
	if err := h.db.Where("id = ? AND faculty_id = ?", courseID, faculty.ID).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// CourseStudentRow is one student's record within a course roster
type CourseStudentRow struct {
	StudentID   uint    `json:"student_id"`
	USN         string  `json:"usn"`
	Name        string  `json:"name"`
	MSE1        float64 `json:"mse1"`
	MSE2        float64 `json:"mse2"`
	Assignment1 float64 `json:"assignment1"`
	Assignment2 float64 `json:"assignment2"`
}

// CourseStudents lists the roster of an owned course with marks
func (h *FacultyHandler) CourseStudents(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	course, err := h.ownedCourse(c, courseID)
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	var enrollments []model.Enrollment
	if err := h.db.Preload("Student").Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil {
		return response.InternalServerError(c, "Failed to load roster")
	}

	rows := make([]CourseStudentRow, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, CourseStudentRow{
			StudentID:   e.StudentID,
			USN:         e.Student.USN,
			Name:        e.Student.Name,
			MSE1:        e.MSE1,
			MSE2:        e.MSE2,
			Assignment1: e.Assignment1,
			Assignment2: e.Assignment2,
		})
	}
	return response.Success(c, fiber.Map{
		"course":   course,
		"students": rows,
	})
}

// MarksRequest updates the internal marks of one enrollment
type MarksRequest struct {
	StudentID   uint     `json:"student_id" validate:"required"`
	MSE1        *float64 `json:"mse1"`
	MSE2        *float64 `json:"mse2"`
	Assignment1 *float64 `json:"assignment1"`
	Assignment2 *float64 `json:"assignment2"`
}

// UpdateMarks sets internal marks for a student in an owned course.
// Only the fields present in the request are touched.
func (h *FacultyHandler) UpdateMarks(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	course, err := h.ownedCourse(c, courseID)
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	var req MarksRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StudentID == 0 {
		return response.BadRequest(c, "student_id is required")
	}

	updates := map[string]interface{}{}
	if req.MSE1 != nil {
		updates["mse1"] = *req.MSE1
	}
	if req.MSE2 != nil {
		updates["mse2"] = *req.MSE2
	}
	if req.Assignment1 != nil {
		updates["assignment1"] = *req.Assignment1
	}
	if req.Assignment2 != nil {
		updates["assignment2"] = *req.Assignment2
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No marks provided")
	}

	result := h.db.Model(&model.Enrollment{}).
		Where("course_id = ? AND student_id = ?", course.ID, req.StudentID).
		Updates(updates)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to update marks")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Student is not enrolled in this course")
	}
	return response.SuccessWithMessage(c, "Marks updated", nil)
}

// AttendanceRequest records presence for a set of students on one date
type AttendanceRequest struct {
	Date    string `json:"date" validate:"required"` // "2006-01-02"
	Records []struct {
		StudentID uint `json:"student_id"`
		Present   bool `json:"present"`
	} `json:"records" validate:"required"`
}

// RecordAttendance stores one day of attendance for an owned course
func (h *FacultyHandler) RecordAttendance(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	course, err := h.ownedCourse(c, courseID)
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return response.BadRequest(c, "Date must be in YYYY-MM-DD format")
	}
	if len(req.Records) == 0 {
		return response.BadRequest(c, "No attendance records provided")
	}

	rows := make([]model.Attendance, 0, len(req.Records))
	for _, r := range req.Records {
		rows = append(rows, model.Attendance{
			Date:      date,
			Present:   r.Present,
			StudentID: r.StudentID,
			CourseID:  course.ID,
		})
	}
	if err := h.db.Create(&rows).Error; err != nil {
		return response.InternalServerError(c, "Failed to record attendance")
	}
	return response.SuccessWithMessage(c, "Attendance recorded", fiber.Map{"count": len(rows)})
}
