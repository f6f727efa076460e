package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// Config locates the chat-completions endpoint.
type Config struct {
	BaseURL               string
	APIKey                string
	Model                 string
	ResponseHeaderTimeout time.Duration
	HTTPClient            *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Stream   bool          `json:"stream"`
	Messages []chatMessage `json:"messages"`
}

// StreamClient issues streaming chat-completion requests. The response body is
// handed back unread so the caller can relay it byte for byte.
type StreamClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewStreamClient creates a client. The default HTTP client has no overall
// timeout; only connection setup and response headers are bounded.
func NewStreamClient(cfg Config) *StreamClient {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: newTransport(cfg.ResponseHeaderTimeout)}
	}
	return &StreamClient{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
	}
}

func newTransport(headerTimeout time.Duration) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext
	if headerTimeout > 0 {
		transport.ResponseHeaderTimeout = headerTimeout
	}
	return transport
}

// Ready reports ErrConfiguration when the API key is missing.
func (c *StreamClient) Ready() error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: AI provider API key not configured", application.ErrConfiguration)
	}
	return nil
}

// OpenStream posts the prompt with stream enabled and returns the raw response.
func (c *StreamClient) OpenStream(ctx context.Context, req application.CompletionRequest) (*application.ProviderResponse, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(chatRequest{
		Model:  c.model,
		Stream: true,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	return &application.ProviderResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}
