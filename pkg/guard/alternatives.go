package guard

import "fmt"

// spatialAlternativeThreshold gates the reduced-region suggestion: at or
// below this many points per dimension there is nothing worth halving.
const spatialAlternativeThreshold = 10

// alternatives produces the ranked remediation list for a denied query.
// Order is fixed: it runs from "cheapest for the user to act on in chat"
// to "leave the chat entirely", and tests assert on it. Every entry is
// re-estimated with the same estimator as the original query so the token
// comparison is apples-to-apples.
func (g *Guard) alternatives(shape GridShape, q Query) []Alternative {
	var alts []Alternative

	// 1. Reduce time range.
	if shape.TimePoints > g.cfg.MinTimeAlternative {
		reduced := shape.TimePoints / 2
		if reduced < g.cfg.MinTimeAlternative {
			reduced = g.cfg.MinTimeAlternative
		}
		est := g.Estimate(GridShape{TimePoints: reduced, LatPoints: shape.LatPoints, LonPoints: shape.LonPoints})
		alts = append(alts, Alternative{
			Approach:        "Reduce time range",
			Description:     fmt.Sprintf("Request %d time steps instead of %d", reduced, shape.TimePoints),
			Example:         "Try: 'Show me data for 2020-2025' instead of the full period",
			EstimatedTokens: est.EstimatedTokens,
		})
	}

	// 2. Reduce spatial coverage.
	if shape.LatPoints > spatialAlternativeThreshold || shape.LonPoints > spatialAlternativeThreshold {
		reducedLat := shape.LatPoints / 2
		if reducedLat < g.cfg.MinSpatialAlternative {
			reducedLat = g.cfg.MinSpatialAlternative
		}
		reducedLon := shape.LonPoints / 2
		if reducedLon < g.cfg.MinSpatialAlternative {
			reducedLon = g.cfg.MinSpatialAlternative
		}
		est := g.Estimate(GridShape{TimePoints: shape.TimePoints, LatPoints: reducedLat, LonPoints: reducedLon})
		alts = append(alts, Alternative{
			Approach:        "Reduce spatial coverage",
			Description:     fmt.Sprintf("Request a smaller region (%d×%d instead of %d×%d)", reducedLat, reducedLon, shape.LatPoints, shape.LonPoints),
			Example:         "Try: 'Show me data for the Northeast US' instead of the entire globe",
			EstimatedTokens: est.EstimatedTokens,
		})
	}

	// 3. Spatial average: the response collapses to a time series.
	avgEst := g.Estimate(GridShape{TimePoints: shape.TimePoints, LatPoints: 1, LonPoints: 1})
	alts = append(alts, Alternative{
		Approach:        "Request spatial average",
		Description:     "Get an area-averaged value instead of the full grid",
		Example:         fmt.Sprintf("Try: 'What is the average %s over this region?'", orDefault(q.Variable, "temperature")),
		EstimatedTokens: avgEst.EstimatedTokens,
	})

	// 4. Coarser frequency, when the point count suggests daily data.
	if shape.TimePoints > g.cfg.DailyHeuristicThreshold {
		monthly := shape.TimePoints / g.cfg.DaysPerMonth
		est := g.Estimate(GridShape{TimePoints: monthly, LatPoints: shape.LatPoints, LonPoints: shape.LonPoints})
		alts = append(alts, Alternative{
			Approach:        "Use monthly averages instead of daily",
			Description:     fmt.Sprintf("Request monthly data (~%d points) instead of daily", monthly),
			Example:         "Specify monthly frequency (Amon) instead of daily",
			EstimatedTokens: est.EstimatedTokens,
		})
	}

	// 5. Out-of-band access: costs nothing in chat, always offered last.
	alts = append(alts, Alternative{
		Approach:        "Download data programmatically",
		Description:     "For large datasets, use Python code to access the data directly",
		CodeExample:     programmaticExample(q),
		EstimatedTokens: 0,
	})

	return alts
}

// programmaticExample renders an illustrative xarray snippet for the
// resolved query parameters.
func programmaticExample(q Query) string {
	variable := orDefault(q.Variable, "tas")
	scenario := orDefault(q.Scenario, "scenarioSSP5-85")
	ensemble := orDefault(q.EnsembleMember, "r15i1p1f1")

	return fmt.Sprintf(`import xarray as xr

# Open the SPEAR dataset from S3
ds = xr.open_dataset(
    's3://noaa-gfdl-spear-%s/...',
    storage_options={'anon': True},
)

# Select your variable and region
data = ds['%s'].sel(
    ensemble='%s',
    time=slice('2020-01-01', '2100-12-31'),
    lat=slice(35, 45),
    lon=slice(280, 290),
)

# Compute statistics or save
result = data.mean(dim=['lat', 'lon'])
result.to_netcdf('output.nc')
`, scenario, variable, ensemble)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
