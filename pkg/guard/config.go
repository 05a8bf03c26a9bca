package guard

// Config groups every tunable the guard uses. The defaults are calibrated
// against the Claude API (200k-token context) and the SPEAR 1° output grid;
// the serialization overhead and chars-per-token figures are approximate by
// nature, so tests and deployments override them through this one struct
// rather than editing constants.
type Config struct {
	// Token budget.
	MaxTokensPerRequest    int // hard protocol maximum, documentation only
	SafeTokenThreshold     int // deny when the projected total exceeds this
	ReservedResponseTokens int // headroom for the model's own reply
	CharsPerToken          int // output characters per token

	// Serialization model.
	BytesPerElement        int     // 4 for float32, 8 for float64
	JSONOverheadMultiplier float64 // inflation from JSON formatting of numeric arrays
	MetadataOverheadBytes  int     // flat cost of coordinates/attributes blocks

	// Nominal grid.
	LatResolution   float64 // degrees per grid cell
	LonResolution   float64
	GlobalLatPoints int // full-grid fallback when a range is absent
	GlobalLonPoints int

	// Supported dataset span, used as the worst case when dates are absent.
	HistoricalStartYear int
	HistoricalEndYear   int
	ScenarioStartYear   int
	ScenarioEndYear     int

	// Time approximations.
	DaysPerMonth int
	DaysPerYear  int

	// Conservative time-point count used when a date fails to parse.
	FallbackTimePoints int

	// Alternative generation.
	MinTimeAlternative      int // floor for the reduced-time-range suggestion
	MinSpatialAlternative   int // floor for each reduced spatial dimension
	DailyHeuristicThreshold int // time points above this look like daily data
}

// DefaultConfig returns the production calibration.
func DefaultConfig() Config {
	return Config{
		MaxTokensPerRequest:    200_000,
		SafeTokenThreshold:     100_000, // half the hard maximum, on purpose
		ReservedResponseTokens: 30_000,
		CharsPerToken:          3,

		BytesPerElement:        4,
		JSONOverheadMultiplier: 2.5,
		MetadataOverheadBytes:  5000,

		LatResolution:   1.0,
		LonResolution:   1.0,
		GlobalLatPoints: 180,
		GlobalLonPoints: 360,

		HistoricalStartYear: 1850,
		HistoricalEndYear:   2014,
		ScenarioStartYear:   2015,
		ScenarioEndYear:     2100,

		DaysPerMonth: 30,
		DaysPerYear:  365,

		FallbackTimePoints: 1000,

		MinTimeAlternative:      12,
		MinSpatialAlternative:   5,
		DailyHeuristicThreshold: 365,
	}
}

// worstCaseYears is the combined historical + future-scenario span.
func (c Config) worstCaseYears() int {
	return (c.HistoricalEndYear - c.HistoricalStartYear + 1) +
		(c.ScenarioEndYear - c.ScenarioStartYear + 1)
}
