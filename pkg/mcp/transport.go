package mcp

import "context"

// Transport abstracts bidirectional JSON-RPC communication with the data
// server.
type Transport interface {
	// Send sends a JSON-RPC request and returns the correlated response.
	Send(ctx context.Context, req Request) (Response, error)
	// Notify sends a JSON-RPC notification (no response expected).
	Notify(ctx context.Context, method string, params any) error
	// Close terminates the connection.
	Close() error
}
