package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/response"
)

// AnnouncementRequest is an admin broadcast. When PushEmail is set the
// announcement is also mailed to every active student's personal
// address.
type AnnouncementRequest struct {
	Title     string `json:"title" validate:"required"`
	Message   string `json:"message"`
	Priority  string `json:"priority"`
	PushEmail bool   `json:"push_email"`
}

// CreateAnnouncement broadcasts an announcement, optionally by email too
func (h *AdminHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = "Medium"
	}

	notif := model.Notification{
		Title:     req.Title,
		Message:   req.Message,
		Priority:  priority,
		NotifType: model.NotifSent,
		Timestamp: time.Now(),
	}
	if err := h.db.Create(&notif).Error; err != nil {
		return response.InternalServerError(c, "Failed to create announcement")
	}

	emailed := 0
	if req.PushEmail {
		var recipients []string
		h.db.Model(&model.Student{}).
			Joins("JOIN users ON users.id = students.user_id").
			Where("users.status = ? AND students.personal_email <> ''", model.StatusActive).
			Pluck("students.personal_email", &recipients)
		if len(recipients) > 0 {
			if err := h.email.SendAnnouncement(recipients, req.Title, req.Message); err != nil {
				h.recordAction(c, "announcement.email_failed", req.Title, err.Error())
			} else {
				emailed = len(recipients)
			}
		}
	}

	h.recordAction(c, "announcement.create", req.Title, priority)
	return response.Created(c, fiber.Map{
		"notification": notif,
		"emailed":      emailed,
	})
}
