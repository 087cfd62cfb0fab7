package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/campushub/portal-api/database"
	"github.com/campushub/portal-api/services/extract"
	"github.com/campushub/portal-api/services/openrouter"
)

const (
	// FallbackAnswer is what the assistant must reply when the context
	// does not contain the answer
	FallbackAnswer = "I could not find this in the uploaded documents."

	documentChatTopK = 3
	subjectChatTopK  = 5
	globalChatTopK   = 5

	topicSearchPool    = 25
	topicSearchLimit   = 6
	topicSnippetLength = 200
)

const answerPrompt = `You are a strict academic assistant.

Rules:
- Answer ONLY using the provided context.
- If answer is missing, reply:
  "I could not find this in the uploaded documents."

Context:
%s

Question:
%s`

// RAGService indexes document text into the chunk store and answers
// questions over it. The LLM client is constructed once at startup and
// shared; requests only pass through here.
type RAGService struct {
	repo *database.RepoStore
	llm  *openrouter.Client
}

// NewRAGService creates a new RAG service
func NewRAGService(repo *database.RepoStore, llm *openrouter.Client) *RAGService {
	return &RAGService{repo: repo, llm: llm}
}

// IndexDocument chunks a document's sections, embeds every chunk and
// writes them to the chunk store in one transaction. Existing chunks
// for the file are replaced so re-ingestion never duplicates.
func (s *RAGService) IndexDocument(ctx context.Context, fileID int64, sections []extract.Section, fileType string) (int, error) {
	profile := ProfileFor(fileType)
	chunks := ChunkSections(sections, profile)
	// An empty document indexes as zero chunks; it is simply never
	// retrievable
	if len(chunks) == 0 {
		log.Printf("RAG: file %d produced no chunks (%s)", fileID, fileType)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}

	vectors, err := s.llm.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding failed: %w", err)
	}

	rows := make([]database.Chunk, len(chunks))
	for i, ch := range chunks {
		rows[i] = database.Chunk{
			FileID:     fileID,
			ChunkIndex: ch.Index,
			Section:    ch.Section,
			Content:    ch.Content,
			Embedding:  vectors[i],
		}
	}

	if err := s.repo.DeleteChunksForFile(ctx, fileID); err != nil {
		return 0, fmt.Errorf("failed to clear old chunks: %w", err)
	}
	if err := s.repo.InsertChunks(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to store chunks: %w", err)
	}

	log.Printf("RAG: indexed file %d with %d chunks (%s)", fileID, len(rows), fileType)
	return len(rows), nil
}

// ChatWithDocument answers a question from the top chunks of one document
func (s *RAGService) ChatWithDocument(ctx context.Context, fileID int64, question string) (string, error) {
	qVec, err := s.llm.EmbedOne(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	hits, err := s.repo.SearchChunksByFile(ctx, qVec, fileID, documentChatTopK)
	if err != nil {
		return "", fmt.Errorf("chunk retrieval failed: %w", err)
	}

	return s.generateAnswer(ctx, hits, question)
}

// ChatWithSubject answers a question from the top chunks across all
// documents of one subject
func (s *RAGService) ChatWithSubject(ctx context.Context, subjectCode, question string) (string, error) {
	qVec, err := s.llm.EmbedOne(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	hits, err := s.repo.SearchChunksBySubject(ctx, qVec, subjectCode, subjectChatTopK)
	if err != nil {
		return "", fmt.Errorf("chunk retrieval failed: %w", err)
	}

	return s.generateAnswer(ctx, hits, question)
}

// ChatGlobal answers a question from the top chunks across the whole
// repository
func (s *RAGService) ChatGlobal(ctx context.Context, question string, topK int) (string, error) {
	if topK <= 0 {
		topK = globalChatTopK
	}

	qVec, err := s.llm.EmbedOne(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	hits, err := s.repo.SearchChunksGlobal(ctx, qVec, topK)
	if err != nil {
		return "", fmt.Errorf("chunk retrieval failed: %w", err)
	}

	return s.generateAnswer(ctx, hits, question)
}

// generateAnswer joins the retrieved chunks into a context block and
// asks the LLM under the strict grounding prompt
func (s *RAGService) generateAnswer(ctx context.Context, hits []database.ChunkHit, question string) (string, error) {
	contents := make([]string, len(hits))
	for i, h := range hits {
		contents[i] = h.Content
	}
	contextBlock := strings.Join(contents, "\n")

	answer, err := s.llm.ChatCompletion(ctx, []openrouter.Message{
		{Role: "user", Content: fmt.Sprintf(answerPrompt, contextBlock, question)},
	})
	if err != nil {
		return "", fmt.Errorf("answer generation failed: %w", err)
	}
	return answer, nil
}

// TopicResult is one document in semantic topic search results
type TopicResult struct {
	FileID       int64   `json:"file_id"`
	SubjectCode  string  `json:"subject_code"`
	FileType     string  `json:"file_type"`
	Section      string  `json:"section"`
	Snippet      string  `json:"snippet"`
	BestDistance float64 `json:"best_distance"`
}

// SearchTopic finds the documents most related to a topic. A wide pool
// of chunks is retrieved, grouped by document keeping each document's
// best-matching chunk, then the closest documents win.
func (s *RAGService) SearchTopic(ctx context.Context, query string, limit int) ([]TopicResult, error) {
	if limit <= 0 {
		limit = topicSearchLimit
	}

	qVec, err := s.llm.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.repo.SearchChunksGlobal(ctx, qVec, topicSearchPool)
	if err != nil {
		return nil, fmt.Errorf("chunk retrieval failed: %w", err)
	}

	byFile := make(map[int64]*TopicResult)
	for _, h := range hits {
		existing, ok := byFile[h.FileID]
		if !ok || h.Distance < existing.BestDistance {
			byFile[h.FileID] = &TopicResult{
				FileID:       h.FileID,
				SubjectCode:  h.SubjectCode,
				FileType:     h.FileType,
				Section:      h.Section,
				Snippet:      snippet(h.Content, topicSnippetLength),
				BestDistance: h.Distance,
			}
		}
	}

	results := make([]TopicResult, 0, len(byFile))
	for _, r := range byFile {
		results = append(results, *r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].BestDistance < results[j].BestDistance })

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
