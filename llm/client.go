package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/use-agent/unslop/cache"
)

const (
	// maxErrorBody bounds how much of a failed response body is echoed back.
	maxErrorBody = 300

	humanizeTitle = "unslop humanizer"
	critiqueTitle = "unslop analyzer"
)

// Options configures a Client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string // e.g. "https://openrouter.ai/api/v1"
}

// Params holds per-call generation settings. An empty Model uses the
// client default.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Title       string
}

// HumanizeParams are the generation settings for Humanize.
var HumanizeParams = Params{Temperature: 0.4, MaxTokens: 2000, Title: humanizeTitle}

// CritiqueParams are the generation settings for Critique.
var CritiqueParams = Params{Temperature: 1.0, MaxTokens: 500, Title: critiqueTitle}

// Client is a lightweight OpenAI-compatible chat completion client.
// It uses net/http directly; no third-party SDK is needed.
type Client struct {
	httpClient *http.Client
	opts       Options
	cache      *cache.Cache
}

// NewClient creates a client. Pass a nil httpClient to use a default one
// and a nil cache to disable completion caching.
func NewClient(opts Options, httpClient *http.Client, c *cache.Cache) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient, opts: opts, cache: c}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.opts.APIKey) != ""
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.opts.Model
}

// chatRequest is the OpenAI chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the minimal chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatErrorResponse captures an API error from the provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one system+user exchange and returns the trimmed reply.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string, p Params) (string, error) {
	if !c.Configured() {
		return "", &ConfigurationError{
			Message: "missing UNSLOP_LLM_API_KEY (or OPENROUTER_API_KEY); set it and restart the server",
		}
	}

	model := p.Model
	if model == "" {
		model = c.opts.Model
	}

	key := cache.Key(model, strconv.FormatFloat(p.Temperature, 'f', -1, 64), strconv.Itoa(p.MaxTokens), systemPrompt, userText)
	if out, ok := c.cache.Get(key); ok {
		return out, nil
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.opts.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	if p.Title != "" {
		req.Header.Set("X-Title", p.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RemoteServiceError{Message: "LLM request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteServiceError{StatusCode: resp.StatusCode, Message: "failed to read LLM response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RemoteServiceError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &RemoteServiceError{Message: "failed to parse LLM response", Err: err}
	}
	if len(chatResp.Choices) == 0 {
		return "", &RemoteServiceError{Err: ErrEmptyCompletion}
	}
	out := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if out == "" {
		return "", &RemoteServiceError{Err: ErrEmptyCompletion}
	}

	c.cache.Set(key, out)
	return out, nil
}

// Humanize asks the model to rewrite text with the given options.
func (c *Client) Humanize(ctx context.Context, text string, opts HumanizeOptions) (string, error) {
	return c.Complete(ctx, HumanizePrompt(opts), text, HumanizeParams)
}

// Critique asks the model for a short prose assessment of text.
func (c *Client) Critique(ctx context.Context, text string) (string, error) {
	return c.Complete(ctx, AnalyzePrompt(), text, CritiqueParams)
}

// errorMessage prefers the provider's error message and falls back to the
// head of the raw body.
func errorMessage(body []byte) string {
	var errResp chatErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "LLM API error"
}
