package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Stream represents an active SSE streaming response.
type Stream struct {
	events <-chan StreamEvent
	body   io.ReadCloser
	cancel context.CancelFunc
}

// NewStream creates a Stream from an SSE event channel and response body.
func NewStream(events <-chan StreamEvent, body io.ReadCloser, cancel context.CancelFunc) *Stream {
	return &Stream{events: events, body: body, cancel: cancel}
}

// Next returns the next wire event, or io.EOF when the stream is done.
func (s *Stream) Next() (*WireEvent, error) {
	event, ok := <-s.events
	if !ok {
		return nil, io.EOF
	}
	if event.Done {
		return nil, io.EOF
	}
	if event.Err != nil {
		return nil, event.Err
	}
	return event.Event, nil
}

// Close cancels the stream and releases the connection. Closing the body
// unblocks the SSE reader goroutine when the caller abandons the stream
// mid-response.
func (s *Stream) Close() {
	s.cancel()
	if s.body != nil {
		s.body.Close()
	}
}

// blockAccum assembles one content block from its start event and deltas.
type blockAccum struct {
	block ContentBlock
	text  strings.Builder
	input strings.Builder // partial_json fragments for tool_use
}

// Accumulate reads all remaining events and returns the fully assembled
// MessageResponse.
func (s *Stream) Accumulate() (*MessageResponse, error) {
	return s.AccumulateWithCallback(nil)
}

// AccumulateWithCallback reads all events, calling cb for each before
// accumulation. Callers use the callback to forward text deltas to the UI
// while the full response assembles.
func (s *Stream) AccumulateWithCallback(cb func(*WireEvent)) (*MessageResponse, error) {
	defer s.Close()

	var response MessageResponse
	blocks := make(map[int]*blockAccum)

	for event := range s.events {
		if event.Err != nil {
			return nil, event.Err
		}
		if event.Done {
			break
		}

		ev := event.Event
		if cb != nil {
			cb(ev)
		}

		switch ev.Type {
		case EventMessageStart:
			if ev.Message != nil {
				response.ID = ev.Message.ID
				response.Model = ev.Message.Model
				response.Role = ev.Message.Role
				response.Usage.InputTokens = ev.Message.Usage.InputTokens
			}

		case EventContentBlockStart:
			acc := &blockAccum{}
			if ev.ContentBlock != nil {
				acc.block = *ev.ContentBlock
			}
			blocks[ev.Index] = acc

		case EventContentBlockDelta:
			acc, ok := blocks[ev.Index]
			if !ok || ev.Delta == nil {
				continue
			}
			switch ev.Delta.Type {
			case "text_delta":
				acc.text.WriteString(ev.Delta.Text)
			case "input_json_delta":
				acc.input.WriteString(ev.Delta.PartialJSON)
			}

		case EventMessageDelta:
			if ev.Delta != nil && ev.Delta.StopReason != "" {
				response.StopReason = ev.Delta.StopReason
			}
			if ev.Usage != nil {
				response.Usage.OutputTokens = ev.Usage.OutputTokens
			}

		case EventError:
			if ev.Error != nil {
				return nil, fmt.Errorf("llm: stream error: %s: %s", ev.Error.Type, ev.Error.Message)
			}
		}
	}

	// Assemble blocks in index order.
	indexes := make([]int, 0, len(blocks))
	for i := range blocks {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	for _, i := range indexes {
		acc := blocks[i]
		block := acc.block

		switch block.Type {
		case "text":
			block.Text += acc.text.String()
		case "tool_use":
			if raw := acc.input.String(); raw != "" {
				var input map[string]any
				if err := json.Unmarshal([]byte(raw), &input); err != nil {
					return nil, fmt.Errorf("llm: tool_use input for %s is not valid JSON: %w", block.Name, err)
				}
				block.Input = input
			}
			if block.Input == nil {
				block.Input = map[string]any{}
			}
		}

		response.Content = append(response.Content, block)
	}

	return &response, nil
}
