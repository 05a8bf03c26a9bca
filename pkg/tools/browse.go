package tools

import "context"

// BrowseDirectoryTool explores the SPEAR data hierarchy on the remote
// server.
type BrowseDirectoryTool struct {
	Client DataClient
}

func (b *BrowseDirectoryTool) Name() string { return "browse_spear_directory" }

func (b *BrowseDirectoryTool) Description() string {
	return "Browse and explore the SPEAR climate data directory structure. Use this to see what scenarios, ensemble members, frequencies, and variables are available at different levels of the data hierarchy."
}

func (b *BrowseDirectoryTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Relative path from SPEAR base (e.g., '' for root, 'historical' for historical scenario, 'historical/r1i1p1f1/Amon' for monthly data). Leave empty to browse the root.",
			},
		},
		"required": []string{},
	}
}

func (b *BrowseDirectoryTool) SideEffect() SideEffectType { return SideEffectNetwork }

func (b *BrowseDirectoryTool) Execute(ctx context.Context, input map[string]any) (ToolOutput, error) {
	return callData(ctx, b.Client, b.Name(), input)
}
