package chat

import "github.com/spear-lab/spearchat/pkg/agent"

// Message types on the wire, both directions.
const (
	MsgUserMessage    = "user_message"    // client → server
	MsgWelcome        = "welcome"         // server → client, once per connection
	MsgAssistantDelta = "assistant_delta" // incremental assistant text
	MsgToolStart      = "tool_start"
	MsgToolDone       = "tool_done"
	MsgGuardDenied    = "guard_denied"
	MsgImage          = "image"
	MsgTurnDone       = "turn_done"
	MsgError          = "error"
)

// WireMessage is the JSON envelope exchanged over the WebSocket.
// Messages are sent as text frames containing JSON.
type WireMessage struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Tool      string `json:"tool,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
	Data      string `json:"data,omitempty"` // base64 image payload
	SessionID string `json:"session_id,omitempty"`
}

// fromEvent translates an agent turn event to its wire form.
func fromEvent(ev agent.Event) WireMessage {
	switch ev.Kind {
	case agent.EventTextDelta:
		return WireMessage{Type: MsgAssistantDelta, Text: ev.Text}
	case agent.EventToolStart:
		return WireMessage{Type: MsgToolStart, Tool: ev.ToolName}
	case agent.EventToolDone:
		return WireMessage{Type: MsgToolDone, Tool: ev.ToolName, IsError: ev.IsError}
	case agent.EventGuardDenied:
		return WireMessage{Type: MsgGuardDenied, Text: ev.Text}
	case agent.EventImage:
		return WireMessage{Type: MsgImage, MimeType: ev.Image.MimeType, Data: ev.Image.Data}
	case agent.EventTurnDone:
		return WireMessage{Type: MsgTurnDone}
	default:
		return WireMessage{Type: MsgError, Text: "unknown event " + string(ev.Kind)}
	}
}
