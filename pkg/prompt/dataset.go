package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Scenario describes one SPEAR experiment.
type Scenario struct {
	Name        string
	TimePeriod  string
	Description string
	Forcing     string
	Notes       string
}

// Scenarios available in the SPEAR archive, keyed by directory name.
var Scenarios = map[string]Scenario{
	"historical": {
		Name:        "Historical",
		TimePeriod:  "1850-2014",
		Description: "Simulation using observed historical forcing (greenhouse gases, aerosols, solar variability, volcanic eruptions, land use)",
		Notes:       "Baseline for validating the model and computing future changes",
	},
	"scenarioSSP5-85": {
		Name:        "SSP5-8.5 (High Emissions)",
		TimePeriod:  "2015-2100",
		Description: "High emissions scenario with fossil-fueled development",
		Forcing:     "~8.5 W/m² radiative forcing and ~1135 ppm CO₂ by 2100; ~4-5°C global mean warming",
		Notes:       "Not a prediction, but a 'what-if' upper-bound pathway useful for risk assessment",
	},
	"scenarioSSP2-45": {
		Name:        "SSP2-4.5 (Middle-of-the-Road)",
		TimePeriod:  "2015-2100",
		Description: "Intermediate emissions scenario",
		Forcing:     "~4.5 W/m² radiative forcing and ~600 ppm CO₂ by 2100; ~2-3°C global mean warming",
		Notes:       "Availability in SPEAR datasets may vary",
	},
	"scenarioSSP1-26": {
		Name:        "SSP1-2.6 (Low Emissions)",
		TimePeriod:  "2015-2100",
		Description: "Low emissions scenario consistent with Paris Agreement goals",
		Forcing:     "~2.6 W/m² radiative forcing and ~450 ppm CO₂ by 2100; ~1.5-2°C global mean warming",
		Notes:       "Availability in SPEAR datasets may vary",
	},
}

// Variable describes one climate variable.
type Variable struct {
	Name           string
	Units          string
	Description    string
	Interpretation string
}

// Variables defines the commonly used SPEAR variables, keyed by short name.
var Variables = map[string]Variable{
	"tas": {
		Name:           "Near-Surface Air Temperature",
		Units:          "K",
		Description:    "Temperature of air at 2 meters above the surface",
		Interpretation: "Daily or monthly mean 2-meter air temperature; typical range 220-320 K",
	},
	"tasmax": {
		Name:        "Daily Maximum Near-Surface Air Temperature",
		Units:       "K",
		Description: "Maximum 2-meter air temperature during a day; useful for extreme heat events",
	},
	"tasmin": {
		Name:        "Daily Minimum Near-Surface Air Temperature",
		Units:       "K",
		Description: "Minimum 2-meter air temperature during a day; useful for cold extremes and frost events",
	},
	"pr": {
		Name:           "Precipitation",
		Units:          "kg m-2 s-1",
		Description:    "Total precipitation (rain + snow) rate",
		Interpretation: "Multiply by 86400 to convert to mm/day",
	},
	"prsn": {
		Name:        "Snowfall Flux",
		Units:       "kg m-2 s-1",
		Description: "Precipitation that falls as snow; subset of total precipitation",
	},
	"hurs": {
		Name:        "Near-Surface Relative Humidity",
		Units:       "%",
		Description: "Relative humidity at 2 meters above the surface",
	},
	"huss": {
		Name:        "Near-Surface Specific Humidity",
		Units:       "kg/kg",
		Description: "Mass of water vapor per unit mass of air at 2 meters",
	},
	"psl": {
		Name:           "Sea Level Pressure",
		Units:          "Pa",
		Description:    "Atmospheric pressure reduced to mean sea level",
		Interpretation: "Used to identify weather systems; typical range 95000-105000 Pa",
	},
	"ps": {
		Name:        "Surface Air Pressure",
		Units:       "Pa",
		Description: "Atmospheric pressure at the surface",
	},
	"uas": {
		Name:        "Eastward Near-Surface Wind",
		Units:       "m/s",
		Description: "Eastward component of wind at 10 meters",
	},
	"vas": {
		Name:        "Northward Near-Surface Wind",
		Units:       "m/s",
		Description: "Northward component of wind at 10 meters",
	},
	"sfcWind": {
		Name:        "Near-Surface Wind Speed",
		Units:       "m/s",
		Description: "Wind speed at 10 meters above the surface",
	},
	"clt": {
		Name:        "Total Cloud Cover",
		Units:       "%",
		Description: "Fraction of sky covered by clouds",
	},
	"tos": {
		Name:        "Sea Surface Temperature",
		Units:       "°C",
		Description: "Temperature of the ocean surface",
	},
	"zos": {
		Name:        "Sea Surface Height",
		Units:       "m",
		Description: "Sea surface height above the geoid",
	},
	"rsds": {
		Name:        "Surface Downwelling Shortwave Radiation",
		Units:       "W/m²",
		Description: "Solar radiation reaching the surface",
	},
	"rlds": {
		Name:        "Surface Downwelling Longwave Radiation",
		Units:       "W/m²",
		Description: "Thermal radiation from the atmosphere reaching the surface",
	},
}

// datasetReference renders the SPEAR reference section of the system
// prompt from the tables above.
func datasetReference() string {
	var b strings.Builder

	b.WriteString("## SPEAR Dataset Reference\n\n")
	b.WriteString("SPEAR (Seamless system for Prediction and EArth system Research) is developed by the NOAA Geophysical Fluid Dynamics Laboratory (GFDL). ")
	b.WriteString("The archive holds the SPEAR_MED configuration: ~100 km atmosphere (AM4, C96 grid), ~1° ocean (MOM6, 0.25° in the tropics), SIS2 sea ice, and LM4 land. ")
	b.WriteString("Data is served on a regular 1°×1° grid (180 latitude × 360 longitude points) with longitudes 0-360°E.\n\n")

	b.WriteString("### Scenarios\n\n")
	for _, key := range sortedKeys(Scenarios) {
		s := Scenarios[key]
		fmt.Fprintf(&b, "- `%s` — %s, %s. %s.", key, s.Name, s.TimePeriod, s.Description)
		if s.Forcing != "" {
			fmt.Fprintf(&b, " %s.", s.Forcing)
		}
		if s.Notes != "" {
			fmt.Fprintf(&b, " %s.", s.Notes)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n### Ensemble Members\n\n")
	b.WriteString("Members follow the rXiYpZfW convention: r is the realization (different initial conditions, typically 1-30), i the initialization method, p the physics, f the forcing. ")
	b.WriteString("SPEAR members are usually i1p1f1, so r1i1p1f1 is the first member and r15i1p1f1 the fifteenth. ")
	b.WriteString("Averaging across members reduces internal variability and reveals the forced signal.\n\n")

	b.WriteString("### Frequencies\n\n")
	b.WriteString("- `Amon` — monthly mean atmospheric variables, best for climate trends and seasonal cycles\n")
	b.WriteString("- `day` — daily values, best for extreme events and daily variability\n\n")

	b.WriteString("### Variables\n\n")
	for _, key := range sortedKeys(Variables) {
		v := Variables[key]
		fmt.Fprintf(&b, "- `%s` — %s (%s): %s.", key, v.Name, v.Units, v.Description)
		if v.Interpretation != "" {
			fmt.Fprintf(&b, " %s.", v.Interpretation)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
