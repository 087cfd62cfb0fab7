package faculty

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/utils/middleware"
	"github.com/campushub/portal-api/utils/response"
	"gorm.io/gorm"
)

// FacultyHandler serves the faculty dashboard and course management
type FacultyHandler struct {
	db     *gorm.DB
	intake *services.FileIntakeService
	audit  *services.AuditService
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(db *gorm.DB, intake *services.FileIntakeService, audit *services.AuditService) *FacultyHandler {
	return &FacultyHandler{db: db, intake: intake, audit: audit}
}

func (h *FacultyHandler) currentFaculty(c *fiber.Ctx) (*model.Faculty, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, errors.New("no authenticated user")
	}
	var faculty model.Faculty
	if err := h.db.Where("user_id = ?", userID).First(&faculty).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

// DashboardResponse aggregates everything the faculty landing page shows
type DashboardResponse struct {
	Profile       model.Faculty            `json:"profile"`
	Courses       []model.Course           `json:"courses"`
	Timetable     []model.FacultyTimetable `json:"timetable"`
	Notifications []model.Notification     `json:"notifications"`
}

// Dashboard returns the faculty profile, owned courses, weekly
// timetable and review requests in one payload
func (h *FacultyHandler) Dashboard(c *fiber.Ctx) error {
	faculty, err := h.currentFaculty(c)
	if err != nil {
		return response.NotFound(c, "Faculty profile not found")
	}

	var courses []model.Course
	if err := h.db.Where("faculty_id = ?", faculty.ID).Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to load courses")
	}

	var timetable []model.FacultyTimetable
	if err := h.db.Where("faculty_id = ?", faculty.ID).Order("day, time_slot").Find(&timetable).Error; err != nil {
		return response.InternalServerError(c, "Failed to load timetable")
	}

	var notifications []model.Notification
	if err := h.db.Where("notif_type = ? AND (sender_id = ? OR sender_id IS NULL)", model.NotifHOD, faculty.ID).
		Order("timestamp DESC").Limit(20).Find(&notifications).Error; err != nil {
		return response.InternalServerError(c, "Failed to load notifications")
	}

	return response.Success(c, DashboardResponse{
		Profile:       *faculty,
		Courses:       courses,
		Timetable:     timetable,
		Notifications: notifications,
	})
}
