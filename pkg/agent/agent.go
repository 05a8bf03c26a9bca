// Package agent drives the conversation: it streams model responses,
// dispatches tool calls, and runs the admission guard in front of the
// data-query tool so oversized responses are refused before any data
// moves.
package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spear-lab/spearchat/pkg/llm"
)

// Agent holds one conversation.
type Agent struct {
	cfg       Config
	sessionID string
	messages  []llm.Message
	usage     *llm.UsageTracker
}

// New creates an agent with an empty conversation.
func New(cfg Config) *Agent {
	if cfg.MaxToolIterations <= 0 {
		cfg.MaxToolIterations = defaultMaxToolIterations
	}
	return &Agent{
		cfg:       cfg,
		sessionID: uuid.New().String(),
		usage:     llm.NewUsageTracker(),
	}
}

// SessionID identifies this conversation.
func (a *Agent) SessionID() string { return a.sessionID }

// Usage exposes the token tracker, which feeds the guard's view of
// conversation size.
func (a *Agent) Usage() *llm.UsageTracker { return a.usage }

// RunTurn processes one user message: stream the assistant response,
// execute requested tools, repeat until the model stops asking for tools
// or the guard terminates the turn. Events stream to emit as they happen.
// The returned string is the assistant's final text.
func (a *Agent) RunTurn(ctx context.Context, userText string, emit Emitter) (string, error) {
	a.messages = append(a.messages, llm.TextMessage(llm.RoleUser, userText))

	var finalText string
	for iteration := 0; iteration < a.cfg.MaxToolIterations; iteration++ {
		resp, err := a.streamResponse(ctx, emit)
		if err != nil {
			return finalText, err
		}
		a.usage.Add(resp.Usage)

		if text := resp.Text(); text != "" {
			finalText = text
		}

		toolUses := resp.ToolUses()
		if len(toolUses) == 0 {
			a.messages = append(a.messages, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
			break
		}

		results, terminal := a.executeTools(ctx, toolUses, emit)

		if terminal {
			// A guard refusal or invalid coordinate range ends the turn:
			// the failed tool round stays out of history so the model is
			// not tempted to retry the identical call. The user decides
			// what to ask next.
			break
		}

		a.messages = append(a.messages, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
		a.messages = append(a.messages, llm.Message{Role: llm.RoleUser, Content: results})
	}

	emit.emit(Event{Kind: EventTurnDone})
	return finalText, nil
}

// streamResponse issues one Messages call and accumulates the streamed
// response, forwarding text deltas as they arrive.
func (a *Agent) streamResponse(ctx context.Context, emit Emitter) (*llm.MessageResponse, error) {
	req := &llm.MessageRequest{
		Model:       a.cfg.Client.Model(),
		System:      a.cfg.SystemPrompt,
		Messages:    a.messages,
		Tools:       a.cfg.Registry.Definitions(),
		Temperature: a.cfg.Temperature,
		Stream:      true,
	}

	stream, err := a.cfg.Client.Messages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("messages request: %w", err)
	}

	return stream.AccumulateWithCallback(func(ev *llm.WireEvent) {
		if ev.Type == llm.EventContentBlockDelta && ev.Delta != nil && ev.Delta.Type == "text_delta" {
			emit.emit(Event{Kind: EventTextDelta, Text: ev.Delta.Text})
		}
	})
}

// executeTools runs each requested tool. terminal reports that the turn
// must stop (guard refusal or invalid coordinates).
func (a *Agent) executeTools(ctx context.Context, toolUses []llm.ContentBlock, emit Emitter) (results []llm.ContentBlock, terminal bool) {
	for _, use := range toolUses {
		result, stop := a.executeSingleTool(ctx, use, emit)
		results = append(results, result)
		if stop {
			return results, true
		}
	}
	return results, false
}

func (a *Agent) executeSingleTool(ctx context.Context, use llm.ContentBlock, emit Emitter) (llm.ContentBlock, bool) {
	errResult := func(msg string) llm.ContentBlock {
		return llm.ContentBlock{Type: "tool_result", ToolUseID: use.ID, Content: msg, IsError: true}
	}

	tool, ok := a.cfg.Registry.Get(use.Name)
	if !ok {
		return errResult(fmt.Sprintf("Error: unknown tool %q", use.Name)), false
	}

	emit.emit(Event{Kind: EventToolStart, ToolName: use.Name})

	input := use.Input
	if use.Name == guardedToolName && a.cfg.Guard != nil {
		checked, refusal, stop := a.admitQuery(use, emit)
		if refusal != nil {
			return *refusal, stop
		}
		input = checked
	}

	output, err := tool.Execute(ctx, input)
	if err != nil {
		emit.emit(Event{Kind: EventToolDone, ToolName: use.Name, IsError: true})
		return errResult(fmt.Sprintf("Error: %s", err)), false
	}

	for _, img := range output.Images {
		emit.emit(Event{Kind: EventImage, Image: img})
	}
	emit.emit(Event{Kind: EventToolDone, ToolName: use.Name, IsError: output.IsError})

	return llm.ContentBlock{
		Type:      "tool_result",
		ToolUseID: use.ID,
		Content:   output.Content,
		IsError:   output.IsError,
	}, false
}
