package repository

import (
	"github.com/gofiber/fiber/v2"
	"github.com/campushub/portal-api/utils/response"
)

// ChatRequest asks a question against indexed documents
type ChatRequest struct {
	Question string `json:"question" validate:"required"`
	TopK     int    `json:"top_k"`
}

func parseChatRequest(c *fiber.Ctx) (*ChatRequest, error) {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ChatDocument answers a question from a single document's chunks
func (h *RepositoryHandler) ChatDocument(c *fiber.Ctx) error {
	fileID, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}
	req, err := parseChatRequest(c)
	if err != nil || req.Question == "" {
		return response.BadRequest(c, "Question is required")
	}

	if _, err := h.repo.GetFile(c.Context(), int64(fileID)); err != nil {
		return response.NotFound(c, "Document not found")
	}

	answer, err := h.rag.ChatWithDocument(c.Context(), int64(fileID), req.Question)
	if err != nil {
		return response.InternalServerError(c, "Failed to answer question")
	}
	return response.Success(c, fiber.Map{
		"file_id":  fileID,
		"question": req.Question,
		"answer":   answer,
	})
}

// ChatPDF is the legacy alias for single-document chat
func (h *RepositoryHandler) ChatPDF(c *fiber.Ctx) error {
	return h.ChatDocument(c)
}

// ChatSubject answers a question from every document in a subject
func (h *RepositoryHandler) ChatSubject(c *fiber.Ctx) error {
	subjectCode := c.Params("code")
	if subjectCode == "" {
		return response.BadRequest(c, "Subject code is required")
	}
	req, err := parseChatRequest(c)
	if err != nil || req.Question == "" {
		return response.BadRequest(c, "Question is required")
	}

	answer, err := h.rag.ChatWithSubject(c.Context(), subjectCode, req.Question)
	if err != nil {
		return response.InternalServerError(c, "Failed to answer question")
	}
	return response.Success(c, fiber.Map{
		"subject_code": subjectCode,
		"question":     req.Question,
		"answer":       answer,
	})
}

// ChatGlobal answers a question across the whole repository
func (h *RepositoryHandler) ChatGlobal(c *fiber.Ctx) error {
	req, err := parseChatRequest(c)
	if err != nil || req.Question == "" {
		return response.BadRequest(c, "Question is required")
	}

	answer, err := h.rag.ChatGlobal(c.Context(), req.Question, req.TopK)
	if err != nil {
		return response.InternalServerError(c, "Failed to answer question")
	}
	return response.Success(c, fiber.Map{
		"question": req.Question,
		"answer":   answer,
	})
}

// SearchTopic finds documents whose content matches a topic query
func (h *RepositoryHandler) SearchTopic(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return response.BadRequest(c, "Query parameter q is required")
	}
	limit := c.QueryInt("limit", 0)

	results, err := h.rag.SearchTopic(c.Context(), query, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search")
	}
	return response.Success(c, fiber.Map{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}
