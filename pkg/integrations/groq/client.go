package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oss-plugin-hub/pluginhub/pkg/httputil"
	"github.com/oss-plugin-hub/pluginhub/pkg/integrations"
)

// DefaultModel is the classification model used when none is configured.
const DefaultModel = "meta-llama/llama-4-scout-17b-16e-instruct"

// Client calls the Groq chat-completions API (OpenAI-compatible).
// Completions are not cached: classification runs checkpoint their own
// results and never re-ask for an item already processed.
type Client struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewClient creates a Groq client. The API key comes from configuration;
// pipelines abort before any work when it is missing.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.groq.com/openai/v1/chat/completions",
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Complete sends a single user message and returns the assistant's text.
// Rate limiting surfaces as [integrations.ErrRateLimited]; the classification
// pipeline chooses to retry it with backoff rather than abort, unlike the
// registry pipelines.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:               c.model,
		Messages:            []message{{Role: "user", Content: prompt}},
		Temperature:         1,
		MaxCompletionTokens: 1024,
		TopP:                1,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", httputil.Retryable(fmt.Errorf("%w: %v", integrations.ErrNetwork, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", integrations.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 500:
		return "", httputil.Retryable(fmt.Errorf("%w: status %d", integrations.ErrNetwork, resp.StatusCode))
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("groq: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", httputil.Retryable(fmt.Errorf("decode completion: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", httputil.Retryable(fmt.Errorf("completion has no choices"))
	}
	return out.Choices[0].Message.Content, nil
}

type chatRequest struct {
	Model               string    `json:"model"`
	Messages            []message `json:"messages"`
	Temperature         float32   `json:"temperature"`
	MaxCompletionTokens int       `json:"max_completion_tokens"`
	TopP                float32   `json:"top_p"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
