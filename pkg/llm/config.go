package llm

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the Anthropic API endpoint.
const DefaultBaseURL = "https://api.anthropic.com"

// anthropicVersion is the API version header sent with every request.
const anthropicVersion = "2023-06-01"

// ClientConfig holds LLM client configuration.
type ClientConfig struct {
	BaseURL    string            // API base URL; empty means DefaultBaseURL
	APIKey     string            // Anthropic API key
	Model      string            // default model for requests
	MaxTokens  int               // default max_tokens for responses (8192)
	Headers    map[string]string // additional HTTP headers
	HTTPClient *http.Client      // custom HTTP client (timeouts, TLS, proxies)
	Retry      RetryConfig
}

// RetryConfig controls retry behavior for transient failures.
type RetryConfig struct {
	MaxRetries        int           // max retry attempts (default: 3)
	InitialBackoff    time.Duration // initial backoff (default: 1s)
	MaxBackoff        time.Duration // backoff cap (default: 30s)
	BackoffFactor     float64       // multiplier per retry (default: 2.0)
	JitterFraction    float64       // random jitter as fraction of backoff (default: 0.1)
	RetryableStatuses []int         // HTTP codes to retry (default: 429, 529, 500, 502, 503)
}

// DefaultRetryConfig returns sensible retry defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffFactor:     2.0,
		JitterFraction:    0.1,
		RetryableStatuses: []int{429, 529, 500, 502, 503},
	}
}
