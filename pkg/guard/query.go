package guard

import "fmt"

// Frequency constants as used in SPEAR file paths.
const (
	FreqMonthly = "Amon"
	FreqDaily   = "day"
)

// Query holds the parameters of a prospective query_netcdf_data call.
// Date strings use either YYYY-MM or YYYY-MM-DD form; empty means
// "unbounded" (the full supported span). Ranges are nil when the caller
// wants global coverage.
type Query struct {
	Variable       string
	Scenario       string
	EnsembleMember string
	Frequency      string // FreqMonthly, FreqDaily, or a dataset-specific value
	StartDate      string
	EndDate        string
	LatRange       *[2]float64 // [min, max] degrees, -90..90
	LonRange       *[2]float64 // [min, max] degrees, signed or 0..360
}

// GridShape is the resolved (time × lat × lon) dimension triple of a query.
type GridShape struct {
	TimePoints int
	LatPoints  int
	LonPoints  int
}

// Elements returns the total number of grid points.
func (s GridShape) Elements() int {
	return s.TimePoints * s.LatPoints * s.LonPoints
}

// SizeEstimate is the predicted cost of serializing a query response.
// The chain raw → JSON → tokens is non-decreasing.
type SizeEstimate struct {
	RawBytes        int
	JSONBytes       int
	EstimatedTokens int
}

// Alternative is one remediation strategy offered when a query is denied.
type Alternative struct {
	Approach        string
	Description     string
	Example         string
	CodeExample     string // non-empty only for programmatic access
	EstimatedTokens int
}

// Result is the outcome of an admission check. Query is a normalized copy
// of the caller's query (longitude shifted to the 0–360 convention); the
// caller should dispatch the fetch with it, not with the original.
type Result struct {
	Allowed         bool
	Shape           GridShape
	Estimate        SizeEstimate
	TotalTokens     int // conversation + estimate + reserved response budget
	Rationale       string
	Alternatives    []Alternative
	Query           Query
	ConversionNotes []string // longitude conversions applied, for traceability
}

// RangeErrorKind distinguishes coordinate validation failures.
type RangeErrorKind string

const (
	KindInvalidLatitude  RangeErrorKind = "invalid latitude range"
	KindInvalidLongitude RangeErrorKind = "invalid longitude range"
)

// RangeError reports an invalid latitude or longitude range. The message
// embeds the offending values and is suitable for showing to the end user
// verbatim.
type RangeError struct {
	Kind    RangeErrorKind
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
