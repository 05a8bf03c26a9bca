package llm

import (
	"context"
	"io"
	"strings"
	"testing"
)

func collectEvents(t *testing.T, body string) ([]StreamEvent, bool) {
	t.Helper()
	ch := ParseSSEStream(context.Background(), io.NopCloser(strings.NewReader(body)))

	var events []StreamEvent
	done := false
	for ev := range ch {
		if ev.Done {
			done = true
			continue
		}
		events = append(events, ev)
	}
	return events, done
}

func TestParseSSEStream(t *testing.T) {
	body := strings.Join([]string{
		`event: message_start`,
		`data: {"type":"message_start","message":{"id":"msg_01","model":"claude-sonnet-4-5-20250929","role":"assistant","usage":{"input_tokens":120,"output_tokens":0}}}`,
		``,
		`event: content_block_start`,
		`data: {"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`,
		``,
		`: keep-alive comment`,
		`data: {"type":"ping"}`,
		``,
		`data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hello"}}`,
		``,
		`data: not-json-at-all`,
		``,
		`data: {"type":"message_stop"}`,
		``,
	}, "\n")

	events, done := collectEvents(t, body)
	if !done {
		t.Error("message_stop did not mark the stream done")
	}

	types := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.Err != nil {
			t.Fatalf("unexpected stream error: %v", ev.Err)
		}
		types = append(types, ev.Event.Type)
	}
	want := []string{EventMessageStart, EventContentBlockStart, EventContentBlockDelta}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestParseSSEStreamUnexpectedEOF(t *testing.T) {
	// Stream that ends without message_stop: channel closes with no Done.
	body := `data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"partial"}}` + "\n"

	events, done := collectEvents(t, body)
	if done {
		t.Error("stream without message_stop reported done")
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestParseSSEStreamContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	go func() {
		pw.Write([]byte(`data: {"type":"ping"}` + "\n"))
		pw.Close()
	}()

	ch := ParseSSEStream(ctx, pr)
	var sawErr bool
	for ev := range ch {
		if ev.Err == context.Canceled {
			sawErr = true
		}
	}
	if !sawErr {
		t.Error("cancelled context did not surface context.Canceled")
	}
}
