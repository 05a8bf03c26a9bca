// Package llm is a streaming client for the Anthropic Messages API with
// tool use, bounded retry, and session token accounting.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Client is the LLM inference client. All methods are safe for concurrent use.
type Client interface {
	// Messages sends a streaming Messages request and returns a Stream.
	Messages(ctx context.Context, req *MessageRequest) (*Stream, error)

	// Model returns the configured default model string.
	Model() string
}

// httpClient implements the Client interface.
type httpClient struct {
	config     ClientConfig
	httpClient *http.Client
	mu         sync.RWMutex
}

// NewClient creates a new LLM client with the given configuration.
func NewClient(cfg ClientConfig) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 8192
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.InitialBackoff == 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	return &httpClient{
		config:     cfg,
		httpClient: cfg.HTTPClient,
	}
}

// Messages sends a streaming Messages request and returns a Stream.
func (c *httpClient) Messages(ctx context.Context, req *MessageRequest) (*Stream, error) {
	req.Stream = true
	if req.Model == "" {
		req.Model = c.Model()
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("llm: marshal request: %w", err)
	}

	url := c.config.BaseURL + "/v1/messages"

	resp, err := doWithRetry(ctx, c.config.Retry, func(ctx context.Context) (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "text/event-stream")
		httpReq.Header.Set("anthropic-version", anthropicVersion)
		if c.config.APIKey != "" {
			httpReq.Header.Set("x-api-key", c.config.APIKey)
		}
		for k, v := range c.config.Headers {
			httpReq.Header.Set(k, v)
		}

		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		apiErr := classifyError(resp)
		resp.Body.Close()
		return nil, apiErr
	}

	streamCtx, cancel := context.WithCancel(ctx)
	events := ParseSSEStream(streamCtx, resp.Body)

	return NewStream(events, resp.Body, cancel), nil
}

// Model returns the configured default model string.
func (c *httpClient) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.Model
}
