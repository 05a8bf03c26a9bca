package agent

import (
	"errors"
	"fmt"

	"github.com/spear-lab/spearchat/pkg/guard"
	"github.com/spear-lab/spearchat/pkg/llm"
	"github.com/spear-lab/spearchat/pkg/tools"
)

// admitQuery runs the admission guard over raw query_netcdf_data
// arguments. On allow it returns the arguments with normalized coordinate
// ranges written back and a nil refusal. On refusal or invalid
// coordinates the refusal is a terminal is_error tool_result; stop tells
// the caller to end the turn.
func (a *Agent) admitQuery(use llm.ContentBlock, emit Emitter) (checked map[string]any, refusal *llm.ContentBlock, stop bool) {
	terminal := func(msg string) (map[string]any, *llm.ContentBlock, bool) {
		emit.emit(Event{Kind: EventGuardDenied, ToolName: use.Name, Text: msg})
		return nil, &llm.ContentBlock{
			Type:      "tool_result",
			ToolUseID: use.ID,
			Content:   msg,
			IsError:   true,
		}, true
	}

	q, err := tools.ParseQuery(use.Input)
	if err != nil {
		// Malformed arguments are a regular tool error, not a guard
		// decision: the model may correct itself.
		return nil, &llm.ContentBlock{
			Type:      "tool_result",
			ToolUseID: use.ID,
			Content:   fmt.Sprintf("Error: %s", err),
			IsError:   true,
		}, false
	}

	result, err := a.cfg.Guard.Check(q, a.usage.ConversationTokens())
	if err != nil {
		var rangeErr *guard.RangeError
		if errors.As(err, &rangeErr) {
			return terminal(fmt.Sprintf("Error: %s. Please correct the coordinate range before querying.", rangeErr))
		}
		return terminal(fmt.Sprintf("Error: %s", err))
	}

	if !result.Allowed {
		return terminal(guard.FormatWarning(result))
	}

	return tools.ApplyQuery(use.Input, result.Query), nil, false
}
