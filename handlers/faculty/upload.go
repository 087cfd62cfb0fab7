package faculty

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/services/extract"
	"github.com/campushub/portal-api/utils/middleware"
	"github.com/campushub/portal-api/utils/response"
)

const maxUploadSize = 25 << 20

// Upload files study material directly under the declared subject and
// unit. Faculty uploads bypass review and go live immediately.
func (h *FacultyHandler) Upload(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	subjectCode := c.FormValue("subject_code")
	semester := c.FormValue("semester")
	unit := c.FormValue("unit")
	if subjectCode == "" || semester == "" || unit == "" {
		return response.BadRequest(c, "subject_code, semester and unit are required")
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

	file, err := h.intake.FacultyUpload(c.Context(), content, fileHeader.Filename, semester, subjectCode, unit, user)
	if err != nil {
		return response.InternalServerError(c, "Failed to process upload")
	}

	_ = h.audit.Record(c.Context(), services.AuditEntry{
		ActorID:    &user.ID,
		ActorEmail: user.Email,
		ActorRole:  string(user.Role),
		Action:     "file.upload",
		Resource:   file.Filename,
		Detail:     "faculty upload published",
		IPAddress:  c.IP(),
	})

	return response.Created(c, file)
}
