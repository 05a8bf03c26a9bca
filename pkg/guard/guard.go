// Package guard implements response-size admission control for data-query
// tool calls. Before a query_netcdf_data invocation is dispatched, the
// guard predicts the token cost of the serialized response from the query's
// declared dimensions and either admits the call or denies it with a ranked
// list of smaller alternatives.
//
// The guard performs no I/O and holds no mutable state; Check is a pure
// function of its inputs and is safe to call concurrently from any number
// of chat sessions.
package guard

import "fmt"

// Guard is the admission-control pipeline: coordinate normalization →
// dimension resolution → size estimation → decision → remediation.
type Guard struct {
	cfg Config
}

// New creates a Guard with the given configuration. Start from
// DefaultConfig and override individual fields; the config is taken as-is
// so tests can pin any tunable, including to zero.
func New(cfg Config) *Guard {
	return &Guard{cfg: cfg}
}

// Config returns the guard's effective configuration.
func (g *Guard) Config() Config {
	return g.cfg
}

// Check decides whether a prospective data query fits the conversation's
// remaining token budget. conversationTokens is the caller's running count
// for the session; the guard tracks nothing across invocations.
//
// A *RangeError is returned for invalid coordinates. A denial is not an
// error: it is a Result with Allowed=false carrying rationale and
// alternatives, so the caller can surface both to the user and mark the
// tool result terminal.
func (g *Guard) Check(q Query, conversationTokens int) (Result, error) {
	norm, notes, err := g.normalize(q)
	if err != nil {
		return Result{}, err
	}

	shape := g.resolveShape(norm)
	est := g.Estimate(shape)
	total := conversationTokens + est.EstimatedTokens + g.cfg.ReservedResponseTokens

	res := Result{
		Shape:           shape,
		Estimate:        est,
		TotalTokens:     total,
		Query:           norm,
		ConversionNotes: notes,
	}

	if total > g.cfg.SafeTokenThreshold {
		res.Allowed = false
		res.Rationale = fmt.Sprintf(
			"This query would generate approximately %d tokens (total: %d), which exceeds the safe limit of %d tokens.",
			est.EstimatedTokens, total, g.cfg.SafeTokenThreshold)
		res.Alternatives = g.alternatives(shape, norm)
		return res, nil
	}

	res.Allowed = true
	return res, nil
}
