package faculty

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/response"
)

// AssignmentRequest creates or updates a course deadline
type AssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required"` // "2006-01-02"
}

// CreateAssignment posts a deadline on an owned course
func (h *FacultyHandler) CreateAssignment(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	course, err := h.ownedCourse(c, courseID)
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return response.BadRequest(c, "Due date must be in YYYY-MM-DD format")
	}

	assignment := model.Assignment{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		CourseID:    course.ID,
	}
	if err := h.db.Create(&assignment).Error; err != nil {
		return response.InternalServerError(c, "Failed to create assignment")
	}

	// Announce the deadline; a failed notification does not undo the assignment.
	faculty, err := h.currentFaculty(c)
	if err == nil {
		notification := model.Notification{
			Title:     "New assignment: " + req.Title,
			Message:   fmt.Sprintf("%s has a new assignment due on %s.", course.Name, due.Format("2006-01-02")),
			Priority:  "Medium",
			NotifType: model.NotifSent,
			SenderID:  &faculty.ID,
			Timestamp: time.Now(),
		}
		if err := h.db.Create(&notification).Error; err != nil {
			log.Printf("faculty: failed to announce assignment %d: %v", assignment.ID, err)
		}
	}
	return response.Created(c, assignment)
}

// ListAssignments returns the deadlines of an owned course
func (h *FacultyHandler) ListAssignments(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	course, err := h.ownedCourse(c, courseID)
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	var assignments []model.Assignment
	if err := h.db.Where("course_id = ?", course.ID).Order("due_date ASC").Find(&assignments).Error; err != nil {
		return response.InternalServerError(c, "Failed to load assignments")
	}
	return response.Success(c, assignments)
}

// DeleteAssignment removes a deadline from an owned course
func (h *FacultyHandler) DeleteAssignment(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}
	course, err := h.ownedCourse(c, courseID)
	if err != nil {
		return response.NotFound(c, "Course not found")
	}

	assignmentID, err := c.ParamsInt("assignmentId")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment id")
	}

	result := h.db.Where("id = ? AND course_id = ?", assignmentID, course.ID).Delete(&model.Assignment{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete assignment")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Assignment not found")
	}
	return response.SuccessWithMessage(c, "Assignment deleted", nil)
}
