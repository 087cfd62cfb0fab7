package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// BaseURL is the OpenRouter API base URL
	BaseURL = "https://openrouter.ai/api/v1"
	// DefaultTimeout is longer for LLM inference requests
	DefaultTimeout = 120 * time.Second
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "meta-llama/llama-3.1-8b-instruct"
	// DefaultEmbeddingModel is the default embedding model; it must
	// produce 384-dimension vectors to match the chunk store schema
	DefaultEmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"
)

// Client handles OpenRouter chat completions and embedding requests
type Client struct {
	apiKey         string
	baseURL        string
	embeddingURL   string
	chatModel      string
	embeddingModel string
	httpClient     *http.Client
}

// Config holds configuration for the OpenRouter client
type Config struct {
	APIKey         string
	BaseURL        string
	EmbeddingURL   string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

// NewClient creates a new OpenRouter client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = BaseURL
	}
	if config.EmbeddingURL == "" {
		config.EmbeddingURL = config.BaseURL
	}
	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = DefaultEmbeddingModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		apiKey:         config.APIKey,
		baseURL:        config.BaseURL,
		embeddingURL:   config.EmbeddingURL,
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Message represents a message in a chat completion request
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ChatRequest is an OpenAI-compatible chat completion request
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatChoice represents a choice in the chat completion response
type ChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse represents the chat completion response
type ChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// ChatCompletion sends a chat completion request and returns the first
// choice's content
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	req := ChatRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   2048,
	}

	var resp ChatResponse
	if err := c.post(ctx, c.baseURL+"/chat/completions", req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingData struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Usage Usage           `json:"usage"`
}

// Embed returns one embedding vector per input text, in input order
func (c *Client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	req := embeddingRequest{
		Model: c.embeddingModel,
		Input: inputs,
	}

	var resp embeddingResponse
	if err := c.post(ctx, c.embeddingURL+"/embeddings", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("embedding API returned %d vectors for %d inputs", len(resp.Data), len(inputs))
	}

	vectors := make([][]float32, len(inputs))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding API returned out-of-range index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// EmbedOne embeds a single text
func (c *Client) EmbedOne(ctx context.Context, input string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{input})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) post(ctx context.Context, url string, payload, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
