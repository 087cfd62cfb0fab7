package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/response"
)

// CourseRequest creates or updates a course
type CourseRequest struct {
	Code       string  `json:"code" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Credits    float64 `json:"credits"`
	Department string  `json:"department"`
	FacultyID  *uint   `json:"faculty_id"`
}

// ListCourses returns all courses, optionally filtered by department
func (h *AdminHandler) ListCourses(c *fiber.Ctx) error {
	var courses []model.Course
	query := h.db.Order("code ASC")
	if dept := c.Query("department"); dept != "" {
		query = query.Where("department = ?", dept)
	}
	if err := query.Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to load courses")
	}
	return response.Success(c, courses)
}

// CreateCourse registers a new course, optionally owned by a faculty
func (h *AdminHandler) CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Code == "" || req.Name == "" {
		return response.BadRequest(c, "code and name are required")
	}

	var existing model.Course
	if err := h.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return response.Conflict(c, "A course with this code already exists")
	}
	if req.FacultyID != nil {
		var faculty model.Faculty
		if err := h.db.First(&faculty, *req.FacultyID).Error; err != nil {
			return response.BadRequest(c, "Faculty not found")
		}
	}

	credits := req.Credits
	if credits <= 0 {
		credits = 3.0
	}
	course := model.Course{
		Code:       req.Code,
		Name:       req.Name,
		Credits:    credits,
		Department: req.Department,
		FacultyID:  req.FacultyID,
	}
	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}
	h.recordAction(c, "course.create", course.Code, course.Name)
	return response.Created(c, course)
}

// UpdateCourse changes a course's name, credits, department or owner
func (h *AdminHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		return response.NotFound(c, "Course not found")
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Credits > 0 {
		updates["credits"] = req.Credits
	}
	if req.Department != "" {
		updates["department"] = req.Department
	}
	if req.FacultyID != nil {
		var faculty model.Faculty
		if err := h.db.First(&faculty, *req.FacultyID).Error; err != nil {
			return response.BadRequest(c, "Faculty not found")
		}
		updates["faculty_id"] = *req.FacultyID
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No changes provided")
	}

	if err := h.db.Model(&course).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}
	h.recordAction(c, "course.update", course.Code, "course updated")
	return response.SuccessWithMessage(c, "Course updated", course)
}

// EnrollRequest adds a student to a course
type EnrollRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
}

// EnrollStudent creates an enrollment row with zeroed marks
func (h *AdminHandler) EnrollStudent(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	var course model.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		return response.NotFound(c, "Course not found")
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	var student model.Student
	if err := h.db.First(&student, req.StudentID).Error; err != nil {
		return response.BadRequest(c, "Student not found")
	}

	var existing model.Enrollment
	if err := h.db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&existing).Error; err == nil {
		return response.Conflict(c, "Student is already enrolled")
	}

	enrollment := model.Enrollment{StudentID: student.ID, CourseID: course.ID}
	if err := h.db.Create(&enrollment).Error; err != nil {
		return response.InternalServerError(c, "Failed to enroll student")
	}
	h.recordAction(c, "course.enroll", course.Code, student.USN)
	return response.Created(c, enrollment)
}
