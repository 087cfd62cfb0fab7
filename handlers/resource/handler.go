package resource

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/utils/cache"
	"github.com/campushub/portal-api/utils/middleware"
	"github.com/campushub/portal-api/utils/response"
	"github.com/campushub/portal-api/utils/validation"
	"gorm.io/gorm"
)

const (
	filterOptionsKey = "resources:filter_options"
	filterOptionsTTL = 10 * time.Minute
)

// ResourceHandler serves study material browsing across roles
type ResourceHandler struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewResourceHandler creates a new resource handler. The cache is
// optional; without it filter options are computed on every request.
func NewResourceHandler(db *gorm.DB, redisCache *cache.RedisCache) *ResourceHandler {
	return &ResourceHandler{db: db, cache: redisCache}
}

// Search filters portal uploads by subject, semester and unit.
// Students only ever see APPROVED material; faculty and admins can
// request other states explicitly.
func (h *ResourceHandler) Search(c *fiber.Ctx) error {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	query := h.db.Model(&model.UploadedFile{}).Order("timestamp DESC")

	if subject := validation.SanitizeString(c.Query("subject_code")); subject != "" {
		query = query.Where("subject_code = ?", subject)
	}
	if semester := validation.SanitizeString(c.Query("semester")); semester != "" {
		query = query.Where("semester = ?", semester)
	}
	if unit := validation.SanitizeString(c.Query("unit")); unit != "" {
		query = query.Where("unit = ?", unit)
	}

	status := c.Query("status")
	if role == string(model.RoleStudent) || status == "" {
		query = query.Where("status = ?", model.FileApproved)
	} else {
		query = query.Where("status = ?", status)
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var files []model.UploadedFile
	if err := query.Limit(limit).Find(&files).Error; err != nil {
		return response.InternalServerError(c, "Failed to search resources")
	}
	return response.Success(c, files)
}

// FilterOptionsResponse lists the distinct values available for the
// search filters, computed over approved uploads.
type FilterOptionsResponse struct {
	Subjects  []string `json:"subjects"`
	Semesters []string `json:"semesters"`
	Units     []string `json:"units"`
}

// FilterOptions returns the filter values the search UI can offer.
// Cached in Redis for a short window since the set changes rarely.
func (h *ResourceHandler) FilterOptions(c *fiber.Ctx) error {
	ctx := c.Context()

	if h.cache != nil {
		var cached FilterOptionsResponse
		if err := h.cache.GetJSON(ctx, filterOptionsKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	approved := func() *gorm.DB {
		return h.db.Model(&model.UploadedFile{}).
			Where("status = ?", model.FileApproved)
	}

	var opts FilterOptionsResponse
	if err := approved().Distinct().Order("subject_code").
		Pluck("subject_code", &opts.Subjects).Error; err != nil {
		return response.InternalServerError(c, "Failed to load filter options")
	}
	if err := approved().Distinct().Order("semester").
		Pluck("semester", &opts.Semesters).Error; err != nil {
		return response.InternalServerError(c, "Failed to load filter options")
	}
	if err := approved().Distinct().Order("unit").
		Pluck("unit", &opts.Units).Error; err != nil {
		return response.InternalServerError(c, "Failed to load filter options")
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, filterOptionsKey, opts, filterOptionsTTL); err != nil {
			log.Printf("resource: failed to cache filter options: %v", err)
		}
	}
	return response.Success(c, opts)
}
