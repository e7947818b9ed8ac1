// Package ai talks to the LLM providers used for drafting. Both
// supported providers expose OpenAI-style chat completions, so a single
// HTTP client covers them; only the base URL, default model and auth
// header differ.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mlevasseur/reportforge/internal/report"
)

// Client generates text from a system and user prompt. The core never
// inspects provider-specific response fields beyond this shape.
type Client interface {
	Generate(ctx context.Context, system, user string, opts GenerateOptions) (string, error)
	Provider() string
	Model() string
	Close()
}

// GenerateOptions tunes a single call. Zero values fall back to the
// client defaults.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

const (
	openAIBaseURL  = "https://api.openai.com/v1"
	mistralBaseURL = "https://api.mistral.ai/v1"

	defaultOpenAIModel  = "gpt-4o-mini"
	defaultMistralModel = "mistral-large-latest"
)

// ChatClient is the shared implementation behind both providers.
type ChatClient struct {
	provider   string
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client

	// Stats records call latencies when non-nil.
	Stats *LLMStats
}

func NewOpenAIClient(apiKey, model string) *ChatClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return newChatClient("openai", openAIBaseURL, apiKey, model)
}

func NewMistralClient(apiKey, model string) *ChatClient {
	if model == "" {
		model = defaultMistralModel
	}
	return newChatClient("mistral", mistralBaseURL, apiKey, model)
}

// FromConfig builds a client for the provider named in the config.
func FromConfig(cfg report.AIProviderConfig) (*ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model), nil
	case "mistral":
		return NewMistralClient(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %q", cfg.Provider)
	}
}

func newChatClient(provider, baseURL, apiKey, model string) *ChatClient {
	return &ChatClient{
		provider: provider,
		baseURL:  baseURL,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		Stats: NewLLMStats(time.Hour),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate runs one chat completion and returns the assistant text.
func (c *ChatClient) Generate(ctx context.Context, system, user string, opts GenerateOptions) (string, error) {
	temp := opts.Temperature
	if temp == 0 {
		temp = 0.3
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temp,
		MaxTokens:   maxTokens,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s api: %w", c.provider, err)
	}
	defer resp.Body.Close()
	if c.Stats != nil {
		c.Stats.Record(time.Since(start).Milliseconds())
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s api status %d: %s", c.provider, resp.StatusCode, truncate(string(respBody), 300))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("%s error: %s: %s", c.provider, apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.provider)
	}

	return apiResp.Choices[0].Message.Content, nil
}

func (c *ChatClient) Provider() string { return c.provider }
func (c *ChatClient) Model() string    { return c.model }

// Close releases idle connections.
func (c *ChatClient) Close() {
	c.httpClient.CloseIdleConnections()
}

// WithBaseURL overrides the API endpoint; used by tests.
func (c *ChatClient) WithBaseURL(u string) *ChatClient {
	c.baseURL = u
	return c
}

// RetryableError indicates a transient provider failure (rate limit or
// server error) worth retrying with backoff.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}
