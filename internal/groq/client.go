// Package groq implements the AI-assisted conversion path on top of
// Groq's OpenAI-compatible chat-completions endpoint.
//
// This path is deliberately separate from the deterministic engine in
// internal/convert: it is a single synchronous network call with an
// explicit timeout, no retries, and a typed error taxonomy (see Kind).
// Successful responses are stripped of markdown fencing and prose and
// run through a corrections pass before being returned.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the free-tier model the original tool shipped with.
	DefaultModel = "llama3-8b-8192"
	// DefaultTimeout bounds one conversion request.
	DefaultTimeout = 30 * time.Second

	// DailyTokenLimit and RequestsPerMinute describe the free-tier
	// budget. The client itself does not enforce them; batch drivers
	// pace and budget their calls against these numbers.
	DailyTokenLimit   = 14400
	RequestsPerMinute = 30
)

// Config parameterises a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns the stock configuration for an API key.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
		Timeout: DefaultTimeout,
	}
}

// Client performs AI conversions. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a Client, filling unset config fields with defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.cfg.Model }

// Prompt returns the user prompt that Convert would send for source.
// Exposed so the cache key can cover the full request contract.
func (c *Client) Prompt(source string) string { return buildPrompt(source) }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Convert sends source through the model and returns cleaned,
// post-processed C# text. Exactly one request is made; every failure is
// returned as *Error and is never retried here.
func (c *Client) Convert(ctx context.Context, source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", &Error{Kind: KindInvalidInput, Msg: "source text is empty"}
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", &Error{Kind: KindInvalidCredential, Msg: "API key is not configured"}
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(source)},
		},
		Temperature: 0.1,
		MaxTokens:   2000,
		TopP:        0.9,
		Stream:      false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &Error{Kind: KindUpstream, Msg: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Kind: KindUpstream, Msg: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &Error{Kind: KindTimeout, Msg: "request timed out", Err: err}
		}
		return "", &Error{Kind: KindUpstream, Msg: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindUpstream, Msg: "failed to read response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decoding below
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", &Error{Kind: KindInvalidCredential, Status: resp.StatusCode, Msg: "API key rejected"}
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &Error{Kind: KindRateLimited, Status: resp.StatusCode, Msg: "daily quota or rate limit exceeded"}
	default:
		return "", &Error{
			Kind:   KindUpstream,
			Status: resp.StatusCode,
			Msg:    fmt.Sprintf("API request failed with status %d: %s", resp.StatusCode, truncateBody(body)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &Error{Kind: KindUpstream, Msg: "failed to parse response", Err: err}
	}
	if parsed.Error != nil {
		return "", &Error{Kind: KindUpstream, Msg: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Kind: KindUpstream, Msg: "no completion returned"}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	return Postprocess(CleanOutput(content)), nil
}

// EstimateTokens approximates the token cost of text at roughly four
// characters per token, matching the original tool's budgeting.
func EstimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	return len(trimmed) / 4
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncateBody(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
