package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/spear-lab/spearchat/pkg/mcp"
)

// DataClient is the subset of the data-server connection the tools need.
// *mcp.Conn satisfies it.
type DataClient interface {
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.ToolResult, error)
}

// RegisterDataTools registers the five SPEAR data tools against a shared
// data-server connection.
func RegisterDataTools(r *Registry, client DataClient) {
	r.Register(&BrowseDirectoryTool{Client: client})
	r.Register(&SearchVariablesTool{Client: client})
	r.Register(&FileMetadataTool{Client: client})
	r.Register(&QueryDataTool{Client: client})
	r.Register(&CreatePlotTool{Client: client})
}

// callData invokes a remote tool and renders the result. Text blocks are
// joined into Content; image blocks (plots) are carried separately so the
// transport can display them without the base64 payload ever entering the
// conversation.
func callData(ctx context.Context, client DataClient, name string, args map[string]any) (ToolOutput, error) {
	if client == nil {
		return ToolOutput{Content: "Error: data server not connected", IsError: true}, nil
	}

	result, err := client.CallTool(ctx, name, args)
	if err != nil {
		return ToolOutput{Content: fmt.Sprintf("Error: %s", err), IsError: true}, nil
	}

	var b strings.Builder
	var images []Image
	for _, block := range result.Content {
		switch block.Type {
		case "text":
			if block.Text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(block.Text)
		case "image":
			images = append(images, Image{MimeType: block.MimeType, Data: block.Data})
		}
	}

	return ToolOutput{
		Content: b.String(),
		IsError: result.IsError,
		Images:  images,
	}, nil
}
