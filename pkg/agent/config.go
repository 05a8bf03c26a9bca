package agent

import (
	"github.com/spear-lab/spearchat/pkg/guard"
	"github.com/spear-lab/spearchat/pkg/llm"
	"github.com/spear-lab/spearchat/pkg/tools"
)

// Config holds everything a conversation needs.
type Config struct {
	Client       llm.Client
	Registry     *tools.Registry
	Guard        *guard.Guard
	SystemPrompt string

	// MaxToolIterations bounds how many request/tool-result rounds a
	// single user turn may take. Zero means the default.
	MaxToolIterations int

	Temperature *float64
}

// defaultMaxToolIterations prevents runaway tool loops.
const defaultMaxToolIterations = 10

// guardedToolName is the one tool whose responses can blow past the
// context window; the guard runs before every dispatch of it.
const guardedToolName = "query_netcdf_data"
