package repository

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/database"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/utils/response"
)

// maxUploadSize caps a single repository upload at 25MB
const maxUploadSize = 25 << 20

// RepositoryHandler serves the smart repository: document ingestion,
// retrieval chat, topic search and peer review
type RepositoryHandler struct {
	repo   *database.RepoStore
	ingest *services.IngestService
	rag    *services.RAGService
}

// NewRepositoryHandler creates a new repository handler
func NewRepositoryHandler(repo *database.RepoStore, ingest *services.IngestService, rag *services.RAGService) *RepositoryHandler {
	return &RepositoryHandler{repo: repo, ingest: ingest, rag: rag}
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Upload ingests one document: extract, classify, moderate, store and
// index for retrieval
func (h *RepositoryHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	if fileHeader.Size > maxUploadSize {
		return response.BadRequest(c, "File exceeds the 25MB upload limit")
	}

	role := c.FormValue("role", "student")
	ownerID := c.FormValue("owner_id")

	content, err := readMultipartFile(fileHeader)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	result, err := h.ingest.Ingest(c.Context(), content, fileHeader.Filename, role, ownerID)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Created(c, result)
}

// UploadBatch ingests several documents in one request. Files that
// fail are skipped and reported; they never sink the batch.
func (h *RepositoryHandler) UploadBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "Multipart form required")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return response.BadRequest(c, "At least one file is required")
	}

	role := c.FormValue("role", "student")
	ownerID := c.FormValue("owner_id")

	files := make(map[string][]byte, len(headers))
	var skipped []services.SkippedFile
	for _, fh := range headers {
		if fh.Size > maxUploadSize {
			skipped = append(skipped, services.SkippedFile{Filename: fh.Filename, Reason: "exceeds the 25MB upload limit"})
			continue
		}
		content, err := readMultipartFile(fh)
		if err != nil {
			skipped = append(skipped, services.SkippedFile{Filename: fh.Filename, Reason: "failed to read upload"})
			continue
		}
		files[fh.Filename] = content
	}

	results, batchSkipped := h.ingest.IngestBatch(c.Context(), files, role, ownerID)
	skipped = append(skipped, batchSkipped...)

	return response.Success(c, fiber.Map{
		"processed": len(results),
		"results":   results,
		"skipped":   skipped,
	})
}

// ClassifyOnly extracts and classifies a file without storing it
func (h *RepositoryHandler) ClassifyOnly(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	content, err := readMultipartFile(fileHeader)
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}

	meta, err := h.ingest.ClassifyOnly(c.Context(), content, fileHeader.Filename)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, meta)
}

// ListFiles returns repository rows filtered by subject and unit
func (h *RepositoryHandler) ListFiles(c *fiber.Ctx) error {
	subjectCode := c.Query("subject_code")
	if subjectCode == "" {
		return response.BadRequest(c, "subject_code is required")
	}
	unit := c.QueryInt("unit", 0)

	files, err := h.repo.ListFilesBySubject(c.Context(), subjectCode, unit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list files")
	}
	return response.Success(c, fiber.Map{
		"subject_code": subjectCode,
		"count":        len(files),
		"files":        files,
	})
}
