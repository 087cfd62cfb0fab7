package student

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/response"
)

// PinRequest creates or updates a dashboard pin
type PinRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"` // "2006-01-02"
}

// CreatePin adds a personal reminder to the student's dashboard
func (h *StudentHandler) CreatePin(c *fiber.Ctx) error {
	student, err := h.currentStudent(c)
	if err != nil {
		return response.NotFound(c, "Student profile not found")
	}

	var req PinRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	due := time.Now().AddDate(0, 0, 7)
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return response.BadRequest(c, "Due date must be in YYYY-MM-DD format")
		}
		due = parsed
	}

	pin := model.StudentPin{
		StudentID:   student.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
	}
	if err := h.db.Create(&pin).Error; err != nil {
		return response.InternalServerError(c, "Failed to create pin")
	}
	return response.Created(c, pin)
}

// ListPins returns the student's pins ordered by due date
func (h *StudentHandler) ListPins(c *fiber.Ctx) error {
	student, err := h.currentStudent(c)
	if err != nil {
		return response.NotFound(c, "Student profile not found")
	}

	var pins []model.StudentPin
	if err := h.db.Where("student_id = ?", student.ID).Order("due_date ASC").Find(&pins).Error; err != nil {
		return response.InternalServerError(c, "Failed to load pins")
	}
	return response.Success(c, pins)
}

// DeletePin removes one of the student's own pins
func (h *StudentHandler) DeletePin(c *fiber.Ctx) error {
	student, err := h.currentStudent(c)
	if err != nil {
		return response.NotFound(c, "Student profile not found")
	}

	pinID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid pin id")
	}

	result := h.db.Where("id = ? AND student_id = ?", pinID, student.ID).Delete(&model.StudentPin{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete pin")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Pin not found")
	}
	return response.SuccessWithMessage(c, "Pin deleted", nil)
}
