package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// StreamEvent wraps a parsed wire event or an error.
type StreamEvent struct {
	Event *WireEvent // non-nil on successful parse
	Err   error      // non-nil on parse error or stream error
	Done  bool       // true when message_stop was received
}

// ParseSSEStream reads an HTTP response body line-by-line and yields
// StreamEvents. The returned channel is closed when the stream ends.
// Only data lines are inspected; each payload carries its own "type"
// field, so the event: lines are redundant.
func ParseSSEStream(ctx context.Context, body io.ReadCloser) <-chan StreamEvent {
	ch := make(chan StreamEvent)

	go func() {
		defer close(ch)
		defer body.Close()

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)

		for scanner.Scan() {
			select {
			case <-ctx.Done():
				ch <- StreamEvent{Err: ctx.Err()}
				return
			default:
			}

			line := scanner.Text()

			// Skip SSE comments (keep-alive pings) and event boundaries.
			if line == "" || strings.HasPrefix(line, ":") {
				continue
			}
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")

			var ev WireEvent
			if err := json.Unmarshal([]byte(data), &ev); err != nil {
				// Malformed JSON: skip, not fatal.
				continue
			}

			switch ev.Type {
			case EventPing:
				continue
			case EventMessageStop:
				ch <- StreamEvent{Done: true}
				return
			}

			ch <- StreamEvent{Event: &ev}
		}

		if err := scanner.Err(); err != nil {
			select {
			case <-ctx.Done():
				ch <- StreamEvent{Err: ctx.Err()}
			default:
				ch <- StreamEvent{Err: err}
			}
			return
		}

		// EOF without message_stop: either the context was cancelled and
		// the body closed under us, or the stream ended unexpectedly.
		select {
		case <-ctx.Done():
			ch <- StreamEvent{Err: ctx.Err()}
		default:
		}
	}()

	return ch
}
