package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/utils/middleware"
	"github.com/campushub/portal-api/utils/response"
	"gorm.io/gorm"
)

// AdminHandler serves account management, course administration and
// the student upload review queue
type AdminHandler struct {
	db     *gorm.DB
	intake *services.FileIntakeService
	audit  *services.AuditService
	email  *services.EmailService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, intake *services.FileIntakeService, audit *services.AuditService, email *services.EmailService) *AdminHandler {
	return &AdminHandler{db: db, intake: intake, audit: audit, email: email}
}

func (h *AdminHandler) recordAction(c *fiber.Ctx, action, resource, detail string) {
	user, ok := middleware.GetUser(c)
	if !ok {
		return
	}
	_ = h.audit.Record(c.Context(), services.AuditEntry{
		ActorID:    &user.ID,
		ActorEmail: user.Email,
		ActorRole:  string(user.Role),
		Action:     action,
		Resource:   resource,
		Detail:     detail,
		IPAddress:  c.IP(),
	})
}

// DashboardCounts summarises the portal state for the admin landing page
type DashboardCounts struct {
	Students        int64 `json:"students"`
	Faculty         int64 `json:"faculty"`
	Courses         int64 `json:"courses"`
	PendingAccounts int64 `json:"pending_accounts"`
	PendingFiles    int64 `json:"pending_files"`
}

// Dashboard returns headline counts across the portal
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	var counts DashboardCounts
	if err := h.db.Model(&model.Student{}).Count(&counts.Students).Error; err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	h.db.Model(&model.Faculty{}).Count(&counts.Faculty)
	h.db.Model(&model.Course{}).Count(&counts.Courses)
	h.db.Model(&model.User{}).Where("status = ?", model.StatusPending).Count(&counts.PendingAccounts)
	h.db.Model(&model.UploadedFile{}).Where("status = ?", model.FilePending).Count(&counts.PendingFiles)
	return response.Success(c, counts)
}

// AuditFeed returns recent audit entries, newest first
func (h *AdminHandler) AuditFeed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	entries, err := h.audit.Feed(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load audit feed")
	}
	return response.Success(c, entries)
}
