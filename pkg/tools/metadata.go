package tools

import "context"

// FileMetadataTool fetches NetCDF file metadata without loading data
// arrays.
type FileMetadataTool struct {
	Client DataClient
}

func (m *FileMetadataTool) Name() string { return "get_s3_file_metadata_only" }

func (m *FileMetadataTool) Description() string {
	return "Get detailed metadata about a specific SPEAR NetCDF file without loading the actual data arrays. Shows dimensions, coordinates, variable attributes, time ranges, and spatial coverage. Use this to understand file structure before querying data."
}

func (m *FileMetadataTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scenario": map[string]any{
				"type":        "string",
				"description": "Either 'historical' or 'scenarioSSP5-85'",
			},
			"ensemble_member": map[string]any{
				"type":        "string",
				"description": "Ensemble member (e.g., 'r1i1p1f1', 'r15i1p1f1')",
			},
			"frequency": map[string]any{
				"type":        "string",
				"description": "'Amon' for monthly, 'day' for daily",
			},
			"variable": map[string]any{
				"type":        "string",
				"description": "Variable name (e.g., 'tas', 'pr', 'ua')",
			},
			"grid": map[string]any{
				"type":        "string",
				"description": "Grid type (typically 'gr3')",
			},
			"version": map[string]any{
				"type":        "string",
				"description": "Data version (typically 'v20210201')",
			},
		},
		"required": []string{"scenario", "variable"},
	}
}

func (m *FileMetadataTool) SideEffect() SideEffectType { return SideEffectNetwork }

func (m *FileMetadataTool) Execute(ctx context.Context, input map[string]any) (ToolOutput, error) {
	return callData(ctx, m.Client, m.Name(), input)
}
