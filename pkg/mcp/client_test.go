package mcp

import (
	"context"
	"testing"
)

// connectFake runs the handshake against a fake transport and installs it
// on the Conn, standing in for Connect.
func connectFake(t *testing.T, c *Conn, ft *fakeTransport) {
	t.Helper()
	if err := c.handshake(context.Background(), ft); err != nil {
		t.Fatalf("handshake: %v", err)
	}
	c.transport = ft
}

func TestConnHandshake(t *testing.T) {
	ft := newFakeTransport().
		withInitialize(ServerCapabilities{Tools: &ToolsCapability{}}).
		withTools([]ToolInfo{
			{Name: "browse_spear_directory"},
			{Name: "query_netcdf_data"},
		})

	c := NewConn(ServerConfig{Type: TransportStdio, Command: "spear-server"})
	connectFake(t, c, ft)

	if c.ServerInfo() == nil || c.ServerInfo().Name != "spear-data-server" {
		t.Errorf("unexpected server info: %+v", c.ServerInfo())
	}
	tools := c.Tools()
	if len(tools) != 2 || tools[0].Name != "browse_spear_directory" {
		t.Errorf("unexpected tools: %+v", tools)
	}

	// The initialized notification must follow the initialize response.
	if len(ft.notified) != 1 || ft.notified[0] != MethodInitialized {
		t.Errorf("expected initialized notification, got %v", ft.notified)
	}
}

func TestConnHandshakeNoTools(t *testing.T) {
	ft := newFakeTransport().withInitialize(ServerCapabilities{})

	c := NewConn(ServerConfig{})
	connectFake(t, c, ft)

	if len(c.Tools()) != 0 {
		t.Errorf("expected no tools, got %+v", c.Tools())
	}
	// tools/list must not have been sent
	for _, req := range ft.sent {
		if req.Method == MethodToolsList {
			t.Error("tools/list sent despite missing capability")
		}
	}
}

func TestConnHandshakeInitializeError(t *testing.T) {
	ft := newFakeTransport() // no responses: initialize gets method-not-found

	c := NewConn(ServerConfig{})
	if err := c.handshake(context.Background(), ft); err == nil {
		t.Fatal("expected handshake error")
	}
}

func TestConnCallTool(t *testing.T) {
	ft := newFakeTransport().
		withInitialize(ServerCapabilities{}).
		withToolCall(ToolResult{Content: []ContentBlock{{Type: "text", Text: "ok"}}})

	c := NewConn(ServerConfig{})
	connectFake(t, c, ft)

	result, err := c.CallTool(context.Background(), "query_netcdf_data", map[string]any{
		"variable": "tas",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Text() != "ok" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestConnCallToolNotConnected(t *testing.T) {
	c := NewConn(ServerConfig{})
	if _, err := c.CallTool(context.Background(), "query_netcdf_data", nil); err == nil {
		t.Error("expected error when not connected")
	}
}

func TestConnClose(t *testing.T) {
	ft := newFakeTransport().withInitialize(ServerCapabilities{})

	c := NewConn(ServerConfig{})
	connectFake(t, c, ft)

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !ft.closed {
		t.Error("transport not closed")
	}
	if c.Tools() != nil || c.ServerInfo() != nil {
		t.Error("state not reset after Close")
	}
	// Closing twice is fine.
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestConnRequestIDsIncrease(t *testing.T) {
	ft := newFakeTransport().
		withInitialize(ServerCapabilities{}).
		withToolCall(ToolResult{})

	c := NewConn(ServerConfig{})
	connectFake(t, c, ft)
	c.CallTool(context.Background(), "x", nil)
	c.CallTool(context.Background(), "x", nil)

	var last int
	for _, req := range ft.sent {
		if req.ID == nil {
			continue
		}
		if *req.ID <= last {
			t.Fatalf("request IDs not strictly increasing: %d after %d", *req.ID, last)
		}
		last = *req.ID
	}
}

func TestCreateTransport(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr bool
	}{
		{"http", ServerConfig{Type: TransportHTTP, URL: "http://localhost:8000/mcp"}, false},
		{"http missing url", ServerConfig{Type: TransportHTTP}, true},
		{"stdio missing command", ServerConfig{Type: TransportStdio}, true},
		{"default missing command", ServerConfig{}, true},
		{"unknown type", ServerConfig{Type: "carrier-pigeon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConn(tt.config)
			tr, err := c.createTransport()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tr.Close()
		})
	}
}
