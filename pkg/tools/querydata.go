package tools

import (
	"context"
	"fmt"

	"github.com/spear-lab/spearchat/pkg/guard"
)

// QueryDataTool retrieves climate data values from the remote server. It
// is the one tool whose responses can be arbitrarily large, so the agent
// runs the admission guard before dispatching it.
type QueryDataTool struct {
	Client DataClient
}

func (q *QueryDataTool) Name() string { return "query_netcdf_data" }

func (q *QueryDataTool) Description() string {
	return "Query and retrieve actual climate data from SPEAR NetCDF files with optional spatial and temporal subsetting. Use this to get real climate data values for analysis."
}

func (q *QueryDataTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"variable": map[string]any{
				"type":        "string",
				"description": "Variable name (e.g., 'tas' for temperature, 'pr' for precipitation)",
			},
			"start_date": map[string]any{
				"type":        "string",
				"description": "Start date in YYYY-MM format (e.g., '2020-01'). Leave null for beginning of dataset.",
			},
			"end_date": map[string]any{
				"type":        "string",
				"description": "End date in YYYY-MM format (e.g., '2021-12'). Leave null for end of dataset.",
			},
			"lat_range": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "number"},
				"description": "[min_latitude, max_latitude] in degrees. E.g., [30, 50] for mid-latitudes. Leave null for global.",
			},
			"lon_range": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "number"},
				"description": "[min_longitude, max_longitude] in degrees. E.g., [-120, -80] for North America. Leave null for global.",
			},
			"scenario": map[string]any{
				"type":        "string",
				"description": "Either 'historical' or 'scenarioSSP5-85'",
			},
			"ensemble_member": map[string]any{
				"type":        "string",
				"description": "Ensemble member (default: 'r15i1p1f1')",
			},
			"frequency": map[string]any{
				"type":        "string",
				"description": "'Amon' for monthly, 'day' for daily (default: 'Amon')",
			},
			"grid": map[string]any{
				"type":        "string",
				"description": "Grid type (default: 'gr3')",
			},
			"version": map[string]any{
				"type":        "string",
				"description": "Data version (default: 'v20210201')",
			},
			"chunk_index": map[string]any{
				"type":        "integer",
				"description": "Which chunk to return if data is chunked (default: 0)",
			},
		},
		"required": []string{"variable"},
	}
}

func (q *QueryDataTool) SideEffect() SideEffectType { return SideEffectNetwork }

func (q *QueryDataTool) Execute(ctx context.Context, input map[string]any) (ToolOutput, error) {
	if _, ok := input["variable"].(string); !ok {
		return ToolOutput{Content: "Error: variable is required", IsError: true}, nil
	}
	return callData(ctx, q.Client, q.Name(), input)
}

// ParseQuery extracts the fields the admission guard needs from raw
// query_netcdf_data arguments. Unknown keys are ignored; they still travel
// to the server untouched.
func ParseQuery(input map[string]any) (guard.Query, error) {
	q := guard.Query{
		Variable:       stringArg(input, "variable"),
		Scenario:       stringArg(input, "scenario"),
		EnsembleMember: stringArg(input, "ensemble_member"),
		Frequency:      stringArg(input, "frequency"),
		StartDate:      stringArg(input, "start_date"),
		EndDate:        stringArg(input, "end_date"),
	}

	latRange, err := rangeArg(input, "lat_range")
	if err != nil {
		return guard.Query{}, err
	}
	q.LatRange = latRange

	lonRange, err := rangeArg(input, "lon_range")
	if err != nil {
		return guard.Query{}, err
	}
	q.LonRange = lonRange

	return q, nil
}

// ApplyQuery writes normalized coordinate ranges back into tool arguments
// so the server receives what the guard approved.
func ApplyQuery(input map[string]any, q guard.Query) map[string]any {
	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}
	if q.LatRange != nil {
		out["lat_range"] = []any{q.LatRange[0], q.LatRange[1]}
	}
	if q.LonRange != nil {
		out["lon_range"] = []any{q.LonRange[0], q.LonRange[1]}
	}
	return out
}

func stringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}

// rangeArg parses a two-element numeric array argument.
func rangeArg(input map[string]any, key string) (*[2]float64, error) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of two numbers", key)
	}
	if len(arr) != 2 {
		return nil, fmt.Errorf("%s must have exactly two elements, got %d", key, len(arr))
	}

	var vals [2]float64
	for i, v := range arr {
		f, ok := v.(float64)
		if !ok {
			// JSON decoding can surface integers differently in tests
			if n, isInt := v.(int); isInt {
				f = float64(n)
			} else {
				return nil, fmt.Errorf("%s[%d] is not a number", key, i)
			}
		}
		vals[i] = f
	}
	return &vals, nil
}
