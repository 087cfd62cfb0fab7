package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/utils/response"
)

// PendingFiles lists student uploads waiting for a decision
func (h *AdminHandler) PendingFiles(c *fiber.Ctx) error {
	files, err := h.intake.PendingFiles(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load pending files")
	}
	return response.Success(c, files)
}

// ApproveFile approves a student upload and forwards it to the smart
// repository. A repository outage does not undo the approval.
func (h *AdminHandler) ApproveFile(c *fiber.Ctx) error {
	fileID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	file, err := h.intake.ApproveFile(c.Context(), uint(fileID))
	if err != nil {
		return response.NotFound(c, "File not found")
	}
	h.recordAction(c, "file.approve", file.Filename, "student upload approved")
	return response.SuccessWithMessage(c, "File approved", file)
}

// DenyFile rejects a student upload
func (h *AdminHandler) DenyFile(c *fiber.Ctx) error {
	fileID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	file, err := h.intake.DenyFile(c.Context(), uint(fileID))
	if err != nil {
		return response.NotFound(c, "File not found")
	}
	h.recordAction(c, "file.deny", file.Filename, "student upload denied")
	return response.SuccessWithMessage(c, "File denied", file)
}
