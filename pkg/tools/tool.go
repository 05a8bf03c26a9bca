// Package tools defines the tool surface the assistant can invoke and the
// five SPEAR data tools that delegate to the remote data server.
package tools

import "context"

// SideEffectType classifies a tool's impact on system state.
type SideEffectType int

const (
	SideEffectNone    SideEffectType = iota // pure computation
	SideEffectNetwork                       // remote data server calls
)

// ToolOutput is the result of a tool execution.
type ToolOutput struct {
	Content string  // text content for the tool_result
	IsError bool    // when true, content is an error message
	Images  []Image // rendered plots, for display outside the conversation
}

// Image is a rendered plot returned by a tool.
type Image struct {
	MimeType string
	Data     string // base64
}

// Tool is the interface every tool must implement.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]any // JSON Schema object for the tools array
	SideEffect() SideEffectType
	Execute(ctx context.Context, input map[string]any) (ToolOutput, error)
}
