package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/luoxin/dailydo/internal/errors"
)

const (
	defaultBaseURL      = "https://api.openai.com/v1"
	defaultModel        = "gpt-4o-mini"
	defaultMaxRetries   = 3
	defaultInitialDelay = 1 * time.Second
)

// Oracle is a synchronous request/response LLM capability. Implementations
// must be safe to call from a single goroutine per command invocation;
// the context carries the caller-imposed deadline.
type Oracle interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Config configures the chat client.
type Config struct {
	// APIKey authenticates against the provider. Required.
	APIKey string
	// BaseURL is the provider endpoint root (default: OpenAI's v1 API).
	BaseURL string
	// Model is the chat model name.
	Model string
	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries int
}

// Client is an OpenAI-compatible chat-completions client.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	delay      time.Duration
	client     *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
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

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewClient creates a chat client from config, filling in defaults for
// unset fields.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		maxRetries: maxRetries,
		delay:      defaultInitialDelay,
		client:     &http.Client{},
	}
}

// Chat sends one system+user exchange and returns the assistant message
// content, trimmed. Transient failures (network errors, 429, 5xx) are
// retried with exponential backoff up to MaxRetries; auth failures and
// undecodable responses are returned immediately as upstream errors.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewUpstreamError(errors.UpstreamAuth, "chat completion", errors.ErrAPIKeyMissing)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.delay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return "", errors.NewUpstreamError(errors.UpstreamNetwork, "chat completion", ctx.Err())
			case <-time.After(delay):
			}
		}

		content, err := c.send(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !errors.IsRetryable(err) {
			return "", err
		}
	}
	return "", lastErr
}

func (c *Client) send(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.NewUpstreamError(errors.UpstreamNetwork, "chat completion", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewUpstreamError(errors.UpstreamNetwork, "read chat response", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "chat completion"
		var ae apiError
		if json.Unmarshal(respBody, &ae) == nil && ae.Error.Message != "" {
			msg = fmt.Sprintf("chat completion: %s", ae.Error.Message)
		}
		return "", errors.NewUpstreamError(errors.UpstreamStatus, msg, nil).WithStatusCode(resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.NewUpstreamError(errors.UpstreamDecode, "decode chat response", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.NewUpstreamError(errors.UpstreamDecode, "chat response has no choices", nil)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// StripFence removes a wrapping Markdown code fence from model output.
// Models frequently wrap structured answers in ``` blocks despite being
// told not to; the content inside is returned unchanged.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
