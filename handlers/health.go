package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/database"
)

// HealthHandler reports liveness of the API and both databases
type HealthHandler struct {
	portal *database.GORMStore
	repo   *database.RepoStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(portal *database.GORMStore, repo *database.RepoStore) *HealthHandler {
	return &HealthHandler{portal: portal, repo: repo}
}

// Check returns overall service health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	portalDB := "ok"
	repoDB := "ok"

	if err := h.portal.HealthCheck(); err != nil {
		portalDB = "unreachable"
		status = "degraded"
	}
	if err := h.repo.HealthCheck(); err != nil {
		repoDB = "unreachable"
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":        status,
		"portal_db":     portalDB,
		"repository_db": repoDB,
	})
}
