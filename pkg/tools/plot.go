package tools

import "context"

// CreatePlotTool asks the data server to render a matplotlib plot. The
// rendered image comes back as a base64 content block for the chat
// transport to display.
type CreatePlotTool struct {
	Client DataClient
}

func (p *CreatePlotTool) Name() string { return "create_plot" }

func (p *CreatePlotTool) Description() string {
	return "Create and display a matplotlib plot for climate data visualization. Supports line plots, bar charts, scatter plots, heatmaps, and contour plots. The plot will be displayed directly in the chat interface."
}

func (p *CreatePlotTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"plot_config": map[string]any{
				"type":        "string",
				"description": `JSON string containing plot configuration with keys: 'plot_type' (line/bar/scatter/heatmap/contour), 'data' (dict with x, y, z arrays), 'title', 'xlabel', 'ylabel', 'style' (optional dict with color, marker, etc.). Example: {"plot_type": "bar", "data": {"x": ["Jan", "Feb", "Mar"], "y": [10, 20, 15]}, "title": "Monthly Data", "xlabel": "Month", "ylabel": "Value"}`,
			},
		},
		"required": []string{"plot_config"},
	}
}

func (p *CreatePlotTool) SideEffect() SideEffectType { return SideEffectNetwork }

func (p *CreatePlotTool) Execute(ctx context.Context, input map[string]any) (ToolOutput, error) {
	if _, ok := input["plot_config"].(string); !ok {
		return ToolOutput{Content: "Error: plot_config is required", IsError: true}, nil
	}
	return callData(ctx, p.Client, p.Name(), input)
}
