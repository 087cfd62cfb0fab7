package repository

import (
	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/utils/response"
)

// ReviewPending lists student uploads that passed AI review and await
// a faculty decision
func (h *RepositoryHandler) ReviewPending(c *fiber.Ctx) error {
	files, err := h.repo.PendingReview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load review queue")
	}
	return response.Success(c, fiber.Map{
		"count": len(files),
		"files": files,
	})
}

// ReviewApprove publishes a reviewed document to peers
func (h *RepositoryHandler) ReviewApprove(c *fiber.Ctx) error {
	fileID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}
	if err := h.ingest.Review(c.Context(), int64(fileID), true); err != nil {
		return response.NotFound(c, "Document not found")
	}
	return response.SuccessWithMessage(c, "Document approved", fiber.Map{"file_id": fileID})
}

// ReviewReject marks a reviewed document rejected
func (h *RepositoryHandler) ReviewReject(c *fiber.Ctx) error {
	fileID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}
	if err := h.ingest.Review(c.Context(), int64(fileID), false); err != nil {
		return response.NotFound(c, "Document not found")
	}
	return response.SuccessWithMessage(c, "Document rejected", fiber.Map{"file_id": fileID})
}
