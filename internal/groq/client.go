// Package groq is a minimal client for the Groq chat-completions API.
//
// Groq exposes an OpenAI-compatible wire format: POST /chat/completions with
// a model name and a list of role/content messages, bearer-token auth, JSON
// both ways. This client covers exactly the slice the explainer needs —
// one synchronous, non-streaming completion per call. No retries, no
// multi-turn context.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the completion model used unless config overrides it.
const DefaultModel = "llama3-8b-8192"

// Fixed sampling parameters. Low temperature keeps explanations close to
// deterministic; the token bound caps response size (and cost).
const (
	temperature     = 0.3
	maxOutputTokens = 1500
)

// ErrMissingAPIKey is returned by New when no credential is supplied.
// The server treats this as "explainer not configured" rather than fatal.
var ErrMissingAPIKey = errors.New("groq: API key is required")

// Message is one chat message in the request payload.
type Message struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// apiError is the error envelope Groq returns on non-2xx responses.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client calls the Groq chat-completions endpoint.
//
// The zero value is not usable — construct with New. The HTTP client carries
// a timeout so a hung upstream can't hold a request forever; there is no
// other cancellation path beyond the caller's context.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customises a Client. Used by tests (to point at an httptest server)
// and by config (to override the model).
type Option func(*Client)

// WithBaseURL overrides the API endpoint root.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithModel overrides the completion model identifier.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client. It fails fast on an empty key — better to surface
// a missing credential at wiring time than on the first user request.
// The key itself is never logged anywhere in this package.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the completion model identifier this client sends.
func (c *Client) Model() string {
	return c.model
}

// ChatCompletion sends one system+user message pair and returns the text of
// the first completion choice, verbatim — no trimming, no reformatting.
func (c *Client) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Prefer the provider's own error message when the envelope parses;
		// fall back to the raw body so the detail is never lost.
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("groq: api status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("groq: api status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var decoded chatResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("groq: response contained no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}
