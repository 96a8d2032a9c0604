// Package anthropic implements the completion port against Anthropic's
// Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	llmhttp "github.com/prrkit/prr/internal/adapter/llm/http"
	"github.com/prrkit/prr/internal/ai"
)

const (
	providerName     = "anthropic"
	defaultBaseURL   = "https://api.anthropic.com"
	defaultTimeout   = 60 * time.Second
	anthropicVersion = "2023-06-01"
)

// Client is an HTTP client for the Anthropic Messages API. Each
// Complete call is a single request; failures surface immediately.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a new Anthropic client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// Name identifies the provider.
func (c *Client) Name() string {
	return providerName
}

// Complete sends one Messages API request and returns the concatenated
// text blocks of the response.
func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	body := MessagesRequest{
		Model:     req.Model,
		System:    req.System,
		MaxTokens: req.MaxTokens,
		Messages: []Message{
			{Role: "user", Content: req.User},
		},
	}
	if req.Temperature > 0 {
		body.Temperature = req.Temperature
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", llmhttp.NewTransportError(providerName, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", c.errorFromResponse(resp.StatusCode, bodyBytes)
	}

	var messagesResp MessagesResponse
	if err := json.Unmarshal(bodyBytes, &messagesResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(messagesResp.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, block := range messagesResp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, ""), nil
}

// errorFromResponse maps an error status to a typed error, preferring
// the message from the API's error envelope when one parses.
func (c *Client) errorFromResponse(statusCode int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", statusCode)
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}
	return llmhttp.FromStatus(providerName, statusCode, message)
}
