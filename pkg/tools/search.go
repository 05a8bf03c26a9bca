package tools

import "context"

// SearchVariablesTool searches for climate variables across SPEAR datasets.
type SearchVariablesTool struct {
	Client DataClient
}

func (s *SearchVariablesTool) Name() string { return "search_spear_variables" }

func (s *SearchVariablesTool) Description() string {
	return "Search for climate variables across SPEAR datasets. Use this to find specific variables like temperature (tas), precipitation (pr), etc. across different scenarios and frequencies."
}

func (s *SearchVariablesTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scenario": map[string]any{
				"type":        "string",
				"description": "Climate scenario: either 'historical' or 'scenarioSSP5-85'",
				"enum":        []string{"historical", "scenarioSSP5-85"},
			},
			"variable_pattern": map[string]any{
				"type":        "string",
				"description": "Pattern to match variable names (e.g., 'tas' for temperature, 'pr' for precipitation, 'ua' for wind). Leave empty to see all variables.",
			},
			"frequency": map[string]any{
				"type":        "string",
				"description": "Data frequency: 'Amon' for monthly, 'day' for daily, etc. Leave empty to search across all frequencies.",
			},
		},
		"required": []string{"scenario"},
	}
}

func (s *SearchVariablesTool) SideEffect() SideEffectType { return SideEffectNetwork }

func (s *SearchVariablesTool) Execute(ctx context.Context, input map[string]any) (ToolOutput, error) {
	if _, ok := input["scenario"].(string); !ok {
		return ToolOutput{Content: "Error: scenario is required", IsError: true}, nil
	}
	return callData(ctx, s.Client, s.Name(), input)
}
