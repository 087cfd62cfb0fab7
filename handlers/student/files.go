package student

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/model"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/services/extract"
	"github.com/campushub/portal-api/utils/middleware"
	"github.com/campushub/portal-api/utils/response"
)

// maxUploadSize caps a single study material upload at 25MB
const maxUploadSize = 25 << 20

// Upload accepts a study material file from a student. The file is
// auto-classified and parked as PENDING until an admin approves it.
func (h *StudentHandler) Upload(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	if fileHeader.Size > maxUploadSize {
		return response.BadRequest(c, "File exceeds the 25MB upload limit")
	}
	if !extract.IsSupported(fileHeader.Filename) {
		return response.BadRequest(c, "Unsupported file type")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	file, err := h.intake.StudentUpload(c.Context(), content, fileHeader.Filename, user)
	if err != nil {
		return response.InternalServerError(c, "Failed to process upload")
	}

	_ = h.audit.Record(c.Context(), services.AuditEntry{
		ActorID:    &user.ID,
		ActorEmail: user.Email,
		ActorRole:  string(user.Role),
		Action:     "file.upload",
		Resource:   file.Filename,
		Detail:     "student upload pending review",
		IPAddress:  c.IP(),
	})

	return response.Created(c, fiber.Map{
		"file":    file,
		"message": "File uploaded and awaiting approval",
	})
}

// MyFiles lists the student's own uploads with their review status
func (h *StudentHandler) MyFiles(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var files []model.UploadedFile
	if err := h.db.Where("uploaded_by_id = ?", userID).Order("timestamp DESC").Find(&files).Error; err != nil {
		return response.InternalServerError(c, "Failed to load files")
	}
	return response.Success(c, files)
}

// Download serves an approved file, or the student's own file in any
// state. Other students' pending or denied uploads stay invisible.
func (h *StudentHandler) Download(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	fileID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	var file model.UploadedFile
	if err := h.db.First(&file, fileID).Error; err != nil {
		return response.NotFound(c, "File not found")
	}
	if file.Status != model.FileApproved && file.UploadedByID != userID {
		return response.Forbidden(c, "File is not available")
	}

	return c.Download(file.FilePath, file.Filename)
}
