package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// fakeTransport implements Transport with pre-programmed responses keyed
// by method.
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]json.RawMessage // method → result JSON
	closed    bool
	notified  []string
	sent      []Request
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{responses: make(map[string]json.RawMessage)}
}

func (f *fakeTransport) withInitialize(caps ServerCapabilities) *fakeTransport {
	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    caps,
		ServerInfo:      ServerInfo{Name: "spear-data-server", Version: "1.0"},
	}
	data, _ := json.Marshal(result)
	f.responses[MethodInitialize] = data
	return f
}

func (f *fakeTransport) withTools(tools []ToolInfo) *fakeTransport {
	data, _ := json.Marshal(ToolsListResult{Tools: tools})
	f.responses[MethodToolsList] = data
	return f
}

func (f *fakeTransport) withToolCall(result ToolResult) *fakeTransport {
	data, _ := json.Marshal(result)
	f.responses[MethodToolsCall] = data
	return f
}

func (f *fakeTransport) Send(_ context.Context, req Request) (Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return Response{}, fmt.Errorf("transport closed")
	}
	f.sent = append(f.sent, req)

	id := 0
	if req.ID != nil {
		id = *req.ID
	}

	result, ok := f.responses[req.Method]
	if !ok {
		return Response{
			JSONRPC: "2.0",
			ID:      id,
			Error:   &ResponseError{Code: -32601, Message: "Method not found: " + req.Method},
		}, nil
	}
	return Response{JSONRPC: "2.0", ID: id, Result: result}, nil
}

func (f *fakeTransport) Notify(_ context.Context, method string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return fmt.Errorf("transport closed")
	}
	f.notified = append(f.notified, method)
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
