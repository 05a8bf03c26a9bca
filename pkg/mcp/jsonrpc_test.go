package mcp

import (
	"encoding/json"
	"testing"
)

func TestNewRequest(t *testing.T) {
	req := newRequest(1, MethodToolsList, nil)
	if req.JSONRPC != "2.0" {
		t.Errorf("expected jsonrpc 2.0, got %q", req.JSONRPC)
	}
	if req.ID == nil || *req.ID != 1 {
		t.Errorf("expected id 1, got %v", req.ID)
	}
	if req.Method != MethodToolsList {
		t.Errorf("expected method tools/list, got %q", req.Method)
	}
	if req.Params != nil {
		t.Errorf("expected nil params, got %v", req.Params)
	}
}

func TestNewNotification(t *testing.T) {
	n := newNotification(MethodInitialized, nil)
	if n.ID != nil {
		t.Errorf("notification should have nil ID, got %v", n.ID)
	}
	if n.Method != MethodInitialized {
		t.Errorf("expected notifications/initialized, got %q", n.Method)
	}
}

func TestNotificationMarshalOmitsID(t *testing.T) {
	n := newNotification(MethodInitialized, nil)
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, hasID := raw["id"]; hasID {
		t.Error("notification should not have 'id' field in JSON")
	}
	if _, hasParams := raw["params"]; hasParams {
		t.Error("nil params should be omitted from JSON")
	}
}

func TestResponseUnmarshalSuccess(t *testing.T) {
	raw := `{"jsonrpc":"2.0","id":1,"result":{"tools":[{"name":"query_netcdf_data"}]}}`
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != 1 {
		t.Errorf("expected id 1, got %d", resp.ID)
	}
	if resp.Error != nil {
		t.Error("expected no error")
	}

	var toolsList ToolsListResult
	if err := json.Unmarshal(resp.Result, &toolsList); err != nil {
		t.Fatal(err)
	}
	if len(toolsList.Tools) != 1 || toolsList.Tools[0].Name != "query_netcdf_data" {
		t.Errorf("unexpected tools: %+v", toolsList)
	}
}

func TestResponseUnmarshalError(t *testing.T) {
	raw := `{"jsonrpc":"2.0","id":5,"error":{"code":-32601,"message":"Method not found"}}`
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil {
		t.Fatal("expected error")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("expected code -32601, got %d", resp.Error.Code)
	}
	if resp.Error.Error() != "Method not found" {
		t.Errorf("Error() should return message, got %q", resp.Error.Error())
	}
}

func TestToolResultText(t *testing.T) {
	r := ToolResult{Content: []ContentBlock{
		{Type: "text", Text: "temperature: "},
		{Type: "image", MimeType: "image/png", Data: "aGk="},
		{Type: "text", Text: "285.3 K"},
	}}
	if got := r.Text(); got != "temperature: 285.3 K" {
		t.Errorf("Text() = %q", got)
	}
}
