package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prrkit/prr/internal/adapter/llm/anthropic"
	llmhttp "github.com/prrkit/prr/internal/adapter/llm/http"
	"github.com/prrkit/prr/internal/ai"
)

func testRequest() ai.CompletionRequest {
	return ai.CompletionRequest{
		System:    "You review diffs.",
		User:      "Review the following diff:\n\n+x",
		Model:     "claude-sonnet-4-5",
		MaxTokens: 4096,
	}
}

func TestClient_Name(t *testing.T) {
	assert.Equal(t, "anthropic", anthropic.NewClient("test-key").Name())
}

func TestClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropic.MessagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-sonnet-4-5", req.Model)
		assert.Equal(t, "You review diffs.", req.System)
		assert.Equal(t, 4096, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropic.MessagesResponse{
			ID:   "msg_123",
			Type: "message",
			Role: "assistant",
			Content: []anthropic.ContentBlock{
				{Type: "text", Text: "[]"},
			},
			Model:      "claude-sonnet-4-5",
			StopReason: "end_turn",
		})
	}))
	defer server.Close()

	client := anthropic.NewClient("test-key")
	client.SetBaseURL(server.URL)

	text, err := client.Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "[]", text)
}

func TestClient_Complete_JoinsTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropic.MessagesResponse{
			Content: []anthropic.ContentBlock{
				{Type: "text", Text: "[{\"type\":\"WARN\","},
				{Type: "thinking", Text: "ignored"},
				{Type: "text", Text: "\"message\":\"x\"}]"},
			},
		})
	}))
	defer server.Close()

	client := anthropic.NewClient("test-key")
	client.SetBaseURL(server.URL)

	text, err := client.Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, `[{"type":"WARN","message":"x"}]`, text)
}

func TestClient_Complete_AuthenticationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(anthropic.ErrorResponse{
			Type: "error",
			Error: anthropic.ErrorDetail{
				Type:    "authentication_error",
				Message: "invalid x-api-key",
			},
		})
	}))
	defer server.Close()

	client := anthropic.NewClient("bad-key")
	client.SetBaseURL(server.URL)

	_, err := client.Complete(context.Background(), testRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, &llmhttp.Error{Type: llmhttp.ErrTypeAuthentication}))
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestClient_Complete_OverloadedMapsToServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(529)
	}))
	defer server.Close()

	client := anthropic.NewClient("test-key")
	client.SetBaseURL(server.URL)

	_, err := client.Complete(context.Background(), testRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, &llmhttp.Error{Type: llmhttp.ErrTypeServiceUnavailable}))
}

func TestClient_Complete_SingleAttempt(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := anthropic.NewClient("test-key")
	client.SetBaseURL(server.URL)

	_, err := client.Complete(context.Background(), testRequest())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Complete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropic.MessagesResponse{})
	}))
	defer server.Close()

	client := anthropic.NewClient("test-key")
	client.SetBaseURL(server.URL)

	_, err := client.Complete(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
