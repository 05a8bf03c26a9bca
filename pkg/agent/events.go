package agent

import "github.com/spear-lab/spearchat/pkg/tools"

// EventKind identifies what a turn event carries.
type EventKind string

const (
	EventTextDelta   EventKind = "text_delta"   // incremental assistant text
	EventToolStart   EventKind = "tool_start"   // a tool is about to run
	EventToolDone    EventKind = "tool_done"    // a tool finished
	EventGuardDenied EventKind = "guard_denied" // admission guard refused a data query
	EventImage       EventKind = "image"        // a rendered plot
	EventTurnDone    EventKind = "turn_done"    // the turn is complete
)

// Event is a single observable step of a turn, streamed to the transport
// while the turn runs.
type Event struct {
	Kind     EventKind
	Text     string      // text_delta: the delta; guard_denied: the formatted warning
	ToolName string      // tool_start / tool_done
	IsError  bool        // tool_done
	Image    tools.Image // image
}

// Emitter receives turn events. A nil Emitter is valid and drops them.
type Emitter func(Event)

func (e Emitter) emit(ev Event) {
	if e != nil {
		e(ev)
	}
}
