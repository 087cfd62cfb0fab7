package faculty

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/response"
)

// NotificationRequest is a faculty announcement to students
type NotificationRequest struct {
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message"`
	Priority string `json:"priority"` // High / Medium / Low
}

// CreateNotification broadcasts an announcement to students
func (h *FacultyHandler) CreateNotification(c *fiber.Ctx) error {
	faculty, err := h.currentFaculty(c)
	if err != nil {
		return response.NotFound(c, "Faculty profile not found")
	}

	var req NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	priority := req.Priority
	switch priority {
	case "High", "Medium", "Low":
	case "":
		priority = "Medium"
	default:
		return response.BadRequest(c, "Priority must be High, Medium or Low")
	}

	notif := model.Notification{
		Title:     req.Title,
		Message:   req.Message,
		Priority:  priority,
		NotifType: model.NotifSent,
		SenderID:  &faculty.ID,
		Timestamp: time.Now(),
	}
	if err := h.db.Create(&notif).Error; err != nil {
		return response.InternalServerError(c, "Failed to create notification")
	}
	return response.Created(c, notif)
}

// ListNotifications returns the announcements this faculty has sent
func (h *FacultyHandler) ListNotifications(c *fiber.Ctx) error {
	faculty, err := h.currentFaculty(c)
	if err != nil {
		return response.NotFound(c, "Faculty profile not found")
	}

	var notifications []model.Notification
	if err := h.db.Where("sender_id = ?", faculty.ID).Order("timestamp DESC").Limit(50).Find(&notifications).Error; err != nil {
		return response.InternalServerError(c, "Failed to load notifications")
	}
	return response.Success(c, notifications)
}
