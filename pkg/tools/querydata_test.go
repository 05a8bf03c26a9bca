package tools

import (
	"encoding/json"
	"testing"
)

func TestParseQueryFullArguments(t *testing.T) {
	// Arguments arrive as generic JSON, exactly as the streaming
	// accumulator produces them.
	raw := `{
		"variable": "tas",
		"scenario": "scenarioSSP5-85",
		"ensemble_member": "r15i1p1f1",
		"frequency": "Amon",
		"start_date": "2020-01",
		"end_date": "2021-12",
		"lat_range": [30, 50],
		"lon_range": [-120, -80],
		"grid": "gr3",
		"chunk_index": 0
	}`
	var input map[string]any
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		t.Fatal(err)
	}

	q, err := ParseQuery(input)
	if err != nil {
		t.Fatal(err)
	}
	if q.Variable != "tas" || q.Scenario != "scenarioSSP5-85" || q.Frequency != "Amon" {
		t.Errorf("unexpected query: %+v", q)
	}
	if q.StartDate != "2020-01" || q.EndDate != "2021-12" {
		t.Errorf("unexpected dates: %+v", q)
	}
	if q.LatRange == nil || q.LatRange[0] != 30 || q.LatRange[1] != 50 {
		t.Errorf("unexpected lat range: %v", q.LatRange)
	}
	if q.LonRange == nil || q.LonRange[0] != -120 || q.LonRange[1] != -80 {
		t.Errorf("unexpected lon range: %v", q.LonRange)
	}
}

func TestParseQueryMinimal(t *testing.T) {
	q, err := ParseQuery(map[string]any{"variable": "pr"})
	if err != nil {
		t.Fatal(err)
	}
	if q.Variable != "pr" {
		t.Errorf("variable: %q", q.Variable)
	}
	if q.LatRange != nil || q.LonRange != nil {
		t.Error("ranges should be nil when absent")
	}
	if q.StartDate != "" || q.EndDate != "" {
		t.Error("dates should be empty when absent")
	}
}

func TestParseQueryBadRanges(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
	}{
		{"not an array", map[string]any{"lat_range": "30,50"}},
		{"one element", map[string]any{"lat_range": []any{30.0}}},
		{"three elements", map[string]any{"lon_range": []any{0.0, 10.0, 20.0}}},
		{"non-numeric element", map[string]any{"lon_range": []any{"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input["variable"] = "tas"
			if _, err := ParseQuery(tt.input); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseQueryNullRange(t *testing.T) {
	var input map[string]any
	if err := json.Unmarshal([]byte(`{"variable":"tas","lat_range":null}`), &input); err != nil {
		t.Fatal(err)
	}
	q, err := ParseQuery(input)
	if err != nil {
		t.Fatal(err)
	}
	if q.LatRange != nil {
		t.Error("null range should parse as nil")
	}
}

func TestApplyQueryWritesBackNormalizedRanges(t *testing.T) {
	input := map[string]any{
		"variable":  "tas",
		"lon_range": []any{-120.0, -80.0},
	}
	q, err := ParseQuery(input)
	if err != nil {
		t.Fatal(err)
	}
	// Stand-in for the guard's longitude conversion.
	q.LonRange[0] = 240
	q.LonRange[1] = 280

	out := ApplyQuery(input, q)
	lon, ok := out["lon_range"].([]any)
	if !ok || len(lon) != 2 {
		t.Fatalf("unexpected lon_range: %v", out["lon_range"])
	}
	if lon[0] != 240.0 || lon[1] != 280.0 {
		t.Errorf("normalized range not applied: %v", lon)
	}

	// Original input must be untouched.
	orig := input["lon_range"].([]any)
	if orig[0] != -120.0 {
		t.Error("ApplyQuery mutated its input")
	}
	if out["variable"] != "tas" {
		t.Error("unrelated keys should carry over")
	}
}
