package llm

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// APIError wraps HTTP-level errors from the Messages API.
type APIError struct {
	StatusCode int
	Kind       string // classified error kind (e.g. "rate_limit")
	Message    string // error message from the response body
	Retryable  bool
	RetryAfter time.Duration // from the Retry-After header, if present
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
}

// ErrMaxRetriesExceeded is returned when all retry attempts are exhausted.
type ErrMaxRetriesExceeded struct {
	Attempts   int
	LastStatus int
}

func (e *ErrMaxRetriesExceeded) Error() string {
	return fmt.Sprintf("llm: max retries exceeded (%d attempts, last HTTP %d)", e.Attempts, e.LastStatus)
}

// apiErrorBody is the JSON error envelope returned by the API.
type apiErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// classifyError maps a non-200 HTTP response to an APIError.
func classifyError(resp *http.Response) *APIError {
	bodyBytes, _ := io.ReadAll(resp.Body)

	msg := http.StatusText(resp.StatusCode)
	var body apiErrorBody
	if err := json.Unmarshal(bodyBytes, &body); err == nil && body.Error.Message != "" {
		msg = body.Error.Message
	} else if len(bodyBytes) > 0 {
		msg = string(bodyBytes)
	}

	kind, retryable := classifyStatus(resp.StatusCode)

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       kind,
		Message:    msg,
		Retryable:  retryable,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// classifyStatus maps an HTTP status code to an error kind and retryability.
func classifyStatus(statusCode int) (kind string, retryable bool) {
	switch statusCode {
	case 400, 422:
		return "invalid_request", false
	case 401:
		return "authentication_failed", false
	case 402, 403:
		return "billing_error", false
	case 413:
		return "request_too_large", false
	case 429, 529:
		return "rate_limit", true
	case 500, 502, 503:
		return "server_error", true
	default:
		return "unknown", false
	}
}

// isRetryable checks if a status code should be retried.
func isRetryable(statusCode int, retryable []int) bool {
	for _, code := range retryable {
		if statusCode == code {
			return true
		}
	}
	return false
}

// parseRetryAfter parses a Retry-After header value (seconds form only).
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
