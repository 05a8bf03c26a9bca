package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
)

// Conn is a connection to the SPEAR data server. It owns the transport,
// runs the initialization handshake, and exposes the server's tools.
type Conn struct {
	config ServerConfig
	info   *ServerInfo
	tools  []ToolInfo

	mu        sync.Mutex
	transport Transport
	nextID    atomic.Int32
}

// NewConn creates an unconnected Conn for the given server config.
func NewConn(config ServerConfig) *Conn {
	return &Conn{config: config}
}

// Connect creates the transport and runs the initialization handshake.
// On success the server's tool list is available via Tools.
func (c *Conn) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport != nil {
		return fmt.Errorf("already connected")
	}

	transport, err := c.createTransport()
	if err != nil {
		return fmt.Errorf("create transport: %w", err)
	}

	if err := c.handshake(ctx, transport); err != nil {
		transport.Close()
		return err
	}

	c.transport = transport
	return nil
}

// handshake performs the initialize exchange and tool discovery on a
// connected transport. Separated from Connect so tests can inject fakes.
func (c *Conn) handshake(ctx context.Context, transport Transport) error {
	initParams := InitializeParams{
		ProtocolVersion: protocolVersion,
		Capabilities:    ClientCapabilities{},
		ClientInfo:      ClientInfo{Name: "spearchat", Version: "0.1.0"},
	}
	resp, err := transport.Send(ctx, newRequest(c.nextRequestID(), MethodInitialize, initParams))
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if resp.Error != nil {
		return fmt.Errorf("initialize error: %s", resp.Error.Message)
	}

	var initResult InitializeResult
	if err := json.Unmarshal(resp.Result, &initResult); err != nil {
		return fmt.Errorf("parse initialize result: %w", err)
	}
	c.info = &initResult.ServerInfo

	if err := transport.Notify(ctx, MethodInitialized, nil); err != nil {
		return fmt.Errorf("send initialized: %w", err)
	}

	if initResult.Capabilities.Tools != nil {
		tools, err := c.listTools(ctx, transport)
		if err != nil {
			return fmt.Errorf("list tools: %w", err)
		}
		c.tools = tools
	}

	return nil
}

// Close terminates the connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport == nil {
		return nil
	}
	err := c.transport.Close()
	c.transport = nil
	c.tools = nil
	c.info = nil
	return err
}

// ServerInfo returns the server identity from the handshake, or nil if
// not connected.
func (c *Conn) ServerInfo() *ServerInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Tools returns the tools the server advertised during the handshake.
func (c *Conn) Tools() []ToolInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tools
}

// CallTool executes a tool on the server.
func (c *Conn) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	c.mu.Lock()
	transport := c.transport
	c.mu.Unlock()

	if transport == nil {
		return nil, fmt.Errorf("not connected")
	}

	resp, err := transport.Send(ctx, newRequest(c.nextRequestID(), MethodToolsCall, ToolCallParams{
		Name:      name,
		Arguments: args,
	}))
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	var result ToolResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("parse tool result: %w", err)
	}
	return &result, nil
}

func (c *Conn) listTools(ctx context.Context, transport Transport) ([]ToolInfo, error) {
	resp, err := transport.Send(ctx, newRequest(c.nextRequestID(), MethodToolsList, nil))
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	var result ToolsListResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

func (c *Conn) createTransport() (Transport, error) {
	switch c.config.Type {
	case TransportStdio, "":
		if c.config.Command == "" {
			return nil, fmt.Errorf("stdio transport requires a command")
		}
		return NewStdioTransport(c.config.Command, c.config.Args, c.config.Env)
	case TransportHTTP:
		if c.config.URL == "" {
			return nil, fmt.Errorf("http transport requires a URL")
		}
		return NewHTTPTransport(c.config.URL, c.config.Headers), nil
	default:
		return nil, fmt.Errorf("unsupported transport type: %q", c.config.Type)
	}
}

func (c *Conn) nextRequestID() int {
	return int(c.nextID.Add(1))
}
