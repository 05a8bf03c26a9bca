package llm

import "sync"

// DefaultConversationTokens is the conservative figure used before any
// API-reported usage is available. A fresh conversation still carries the
// system prompt and dataset reference, so zero would under-count.
const DefaultConversationTokens = 15_000

// estimatorCharsPerToken is the ~4 characters per token heuristic used for
// locally assembled text (prompts, tool results) that has not been billed
// yet.
const estimatorCharsPerToken = 4

// EstimateTokens approximates the token count of a string.
func EstimateTokens(text string) int {
	return len(text) / estimatorCharsPerToken
}

// UsageTracker accumulates API-reported usage for one chat session. Its
// running figure is what callers feed the admission guard as the current
// conversation cost. Safe for concurrent use.
type UsageTracker struct {
	mu          sync.Mutex
	last        Usage
	totalInput  int
	totalOutput int
	requests    int
}

// NewUsageTracker creates an empty tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{}
}

// Add records usage from one API response.
func (t *UsageTracker) Add(u Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = u
	t.totalInput += u.InputTokens
	t.totalOutput += u.OutputTokens
	t.requests++
}

// ConversationTokens returns the best available estimate of the tokens the
// next request will carry as history: the last request's prompt size plus
// its reply. Before any usage is recorded it returns
// DefaultConversationTokens rather than zero.
func (t *UsageTracker) ConversationTokens() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.requests == 0 {
		return DefaultConversationTokens
	}
	return t.last.InputTokens + t.last.OutputTokens
}

// Totals returns cumulative input and output tokens across the session.
func (t *UsageTracker) Totals() (input, output int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalInput, t.totalOutput
}

// Requests returns the number of responses recorded.
func (t *UsageTracker) Requests() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requests
}
