package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
)

func TestStreamClientOpenStream(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hi\"}}]}\n\ndata: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewStreamClient(Config{BaseURL: server.URL + "/v1/", APIKey: "sk-test"})
	resp, err := client.OpenStream(context.Background(), application.CompletionRequest{SystemPrompt: "sys", UserPrompt: "user"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "data: [DONE]")

	assert.Equal(t, DefaultModel, got.Model)
	assert.True(t, got.Stream)
	assert.Equal(t, []chatMessage{{Role: "system", Content: "sys"}, {Role: "user", Content: "user"}}, got.Messages)
}

func TestStreamClientPassesErrorStatusThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"slow down"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewStreamClient(Config{BaseURL: server.URL, APIKey: "sk-test", Model: "gpt-4o"})
	resp, err := client.OpenStream(context.Background(), application.CompletionRequest{})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestStreamClientRequiresAPIKey(t *testing.T) {
	client := NewStreamClient(Config{})
	assert.ErrorIs(t, client.Ready(), application.ErrConfiguration)

	_, err := client.OpenStream(context.Background(), application.CompletionRequest{})
	assert.ErrorIs(t, err, application.ErrConfiguration)
}

func TestStreamClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewStreamClient(Config{BaseURL: url, APIKey: "sk-test"}).OpenStream(context.Background(), application.CompletionRequest{})
	assert.Error(t, err)
}
