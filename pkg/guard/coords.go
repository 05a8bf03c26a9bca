package guard

import "fmt"

// normalize validates latitude, converts signed longitudes to the dataset's
// 0–360 convention, and returns a new Query; the caller's query is never
// mutated. The returned notes record every longitude shift applied.
func (g *Guard) normalize(q Query) (Query, []string, error) {
	out := q
	var notes []string

	if q.LatRange != nil {
		minLat, maxLat := q.LatRange[0], q.LatRange[1]
		if minLat < -90 || maxLat > 90 {
			return Query{}, nil, &RangeError{
				Kind:    KindInvalidLatitude,
				Message: fmt.Sprintf("latitude must be between -90 and 90 degrees, got [%g, %g]", minLat, maxLat),
			}
		}
		if minLat >= maxLat {
			return Query{}, nil, &RangeError{
				Kind:    KindInvalidLatitude,
				Message: fmt.Sprintf("min_lat must be less than max_lat, got [%g, %g]", minLat, maxLat),
			}
		}
		lat := *q.LatRange
		out.LatRange = &lat
	}

	if q.LonRange != nil {
		minLon, maxLon := q.LonRange[0], q.LonRange[1]

		// SPEAR longitudes run 0–360; shift a -180..180 caller transparently.
		if minLon < 0 {
			notes = append(notes, fmt.Sprintf("converted min_lon: %g° → %g°", minLon, minLon+360))
			minLon += 360
		}
		if maxLon < 0 {
			notes = append(notes, fmt.Sprintf("converted max_lon: %g° → %g°", maxLon, maxLon+360))
			maxLon += 360
		}

		if minLon > 360 || maxLon > 360 {
			return Query{}, nil, &RangeError{
				Kind:    KindInvalidLongitude,
				Message: fmt.Sprintf("longitude must be between 0 and 360 degrees, got [%g, %g] after conversion", minLon, maxLon),
			}
		}

		out.LonRange = &[2]float64{minLon, maxLon}
	}

	return out, notes, nil
}
