package mcp

import "encoding/json"

// Request is a JSON-RPC 2.0 request message.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      *int   `json:"id,omitempty"` // nil for notifications
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response message.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the error object in a JSON-RPC 2.0 response.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *ResponseError) Error() string { return e.Message }

// newRequest creates a JSON-RPC 2.0 request.
func newRequest(id int, method string, params any) Request {
	return Request{JSONRPC: "2.0", ID: &id, Method: method, Params: params}
}

// newNotification creates a JSON-RPC 2.0 notification (no response expected).
func newNotification(method string, params any) Request {
	return Request{JSONRPC: "2.0", Method: method, Params: params}
}
