package guard

import "time"

// resolveShape turns a normalized query into concrete grid-point counts.
func (g *Guard) resolveShape(q Query) GridShape {
	latPoints, lonPoints := g.resolveSpatial(q.LatRange, q.LonRange)
	return GridShape{
		TimePoints: g.resolveTime(q.StartDate, q.EndDate, q.Frequency),
		LatPoints:  latPoints,
		LonPoints:  lonPoints,
	}
}

// resolveTime computes the number of time steps between two calendar dates.
//
// Missing bounds resolve to the full historical + scenario span: the guard
// must never under-estimate, so an open-ended query is costed as if it
// covered everything the dataset holds. A date that fails to parse resolves
// to a fixed conservative count for the same reason; a malformed date must
// not slip past size checking.
func (g *Guard) resolveTime(startDate, endDate, frequency string) int {
	cfg := g.cfg

	if startDate == "" || endDate == "" {
		years := cfg.worstCaseYears()
		switch frequency {
		case FreqDaily:
			return years * cfg.DaysPerYear
		default:
			return years * 12
		}
	}

	start, err := parseDate(startDate)
	if err != nil {
		return cfg.FallbackTimePoints
	}
	end, err := parseDate(endDate)
	if err != nil {
		return cfg.FallbackTimePoints
	}

	// Whole months, inclusive of both endpoints.
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		months = 1
	}

	switch frequency {
	case FreqDaily:
		// Deliberate over-approximation: months × 30 rather than exact
		// calendar days.
		return months * cfg.DaysPerMonth
	default:
		return months
	}
}

// parseDate accepts YYYY-MM or YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if len(s) == 7 {
		return time.Parse("2006-01", s)
	}
	return time.Parse("2006-01-02", s)
}

// resolveSpatial derives grid-point counts from coordinate ranges at the
// nominal resolution. An absent range means the full global grid.
func (g *Guard) resolveSpatial(latRange, lonRange *[2]float64) (latPoints, lonPoints int) {
	cfg := g.cfg

	if latRange == nil || lonRange == nil {
		return cfg.GlobalLatPoints, cfg.GlobalLonPoints
	}

	latSpan := latRange[1] - latRange[0]
	if latSpan < 0 {
		latSpan = -latSpan
	}
	lonSpan := lonRange[1] - lonRange[0]
	if lonSpan < 0 {
		lonSpan = -lonSpan
	}

	latPoints = int(latSpan / cfg.LatResolution)
	lonPoints = int(lonSpan / cfg.LonResolution)
	if latPoints < 1 {
		latPoints = 1
	}
	if lonPoints < 1 {
		lonPoints = 1
	}
	return latPoints, lonPoints
}
