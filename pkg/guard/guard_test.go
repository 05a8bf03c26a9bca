package guard

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

// flatConfig makes token math exact: one byte per element, no JSON
// inflation, no metadata, one char per token, no reserve. A 12×10×10 query
// then costs exactly 1200 tokens.
func flatConfig(threshold int) Config {
	cfg := DefaultConfig()
	cfg.BytesPerElement = 1
	cfg.JSONOverheadMultiplier = 1.0
	cfg.MetadataOverheadBytes = 0
	cfg.CharsPerToken = 1
	cfg.ReservedResponseTokens = 0
	cfg.SafeTokenThreshold = threshold
	return cfg
}

func smallQuery() Query {
	return Query{
		Variable:  "tas",
		Frequency: FreqMonthly,
		StartDate: "2020-01",
		EndDate:   "2020-12",
		LatRange:  &[2]float64{10, 20},
		LonRange:  &[2]float64{10, 20},
	}
}

func TestThresholdBoundary(t *testing.T) {
	g := New(flatConfig(50_000))

	// smallQuery resolves to 12×10×10 = 1200 tokens under flatConfig.
	const queryTokens = 1200

	t.Run("total equal to threshold is allowed", func(t *testing.T) {
		res, err := g.Check(smallQuery(), 50_000-queryTokens)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if res.TotalTokens != 50_000 {
			t.Fatalf("TotalTokens = %d, want exactly 50000", res.TotalTokens)
		}
		if !res.Allowed {
			t.Error("query exactly at threshold was denied; ties go to allowed")
		}
	})

	t.Run("one over threshold is denied", func(t *testing.T) {
		res, err := g.Check(smallQuery(), 50_000-queryTokens+1)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if res.Allowed {
			t.Error("query one token over threshold was allowed")
		}
		if res.Rationale == "" {
			t.Error("denied result has no rationale")
		}
		if len(res.Alternatives) == 0 {
			t.Error("denied result has no alternatives")
		}
	})
}

func TestConservativeDefaulting(t *testing.T) {
	g := New(DefaultConfig())

	open, err := g.Check(Query{Frequency: FreqMonthly}, 0)
	if err != nil {
		t.Fatalf("Check open-ended: %v", err)
	}

	// No concrete sub-range of the supported span may estimate higher than
	// the open-ended worst case.
	subRanges := [][2]string{
		{"1850-01", "2100-12"}, // the whole span, explicitly
		{"1850-01", "2014-12"},
		{"2015-01", "2100-12"},
		{"2020-01", "2020-12"},
	}
	for _, r := range subRanges {
		res, err := g.Check(Query{Frequency: FreqMonthly, StartDate: r[0], EndDate: r[1]}, 0)
		if err != nil {
			t.Fatalf("Check %v: %v", r, err)
		}
		if res.Estimate.EstimatedTokens > open.Estimate.EstimatedTokens {
			t.Errorf("sub-range %v estimated %d tokens, more than open-ended %d",
				r, res.Estimate.EstimatedTokens, open.Estimate.EstimatedTokens)
		}
	}
}

func TestCheckScenarios(t *testing.T) {
	g := New(DefaultConfig())

	t.Run("small regional year is allowed", func(t *testing.T) {
		res, err := g.Check(Query{
			Frequency: FreqMonthly,
			StartDate: "2020-01",
			EndDate:   "2020-12",
			LatRange:  &[2]float64{10, 20},
			LonRange:  &[2]float64{10, 20},
		}, 15_000)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if want := (GridShape{TimePoints: 12, LatPoints: 10, LonPoints: 10}); res.Shape != want {
			t.Errorf("Shape = %+v, want %+v", res.Shape, want)
		}
		if !res.Allowed {
			t.Errorf("small query denied: %s", res.Rationale)
		}
	})

	t.Run("unbounded global query is denied with both reductions", func(t *testing.T) {
		res, err := g.Check(Query{Frequency: FreqMonthly}, 15_000)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if want := (GridShape{TimePoints: 3012, LatPoints: 180, LonPoints: 360}); res.Shape != want {
			t.Errorf("Shape = %+v, want %+v", res.Shape, want)
		}
		if res.Allowed {
			t.Fatal("worst-case global query was allowed")
		}
		var haveTime, haveSpatial bool
		for _, a := range res.Alternatives {
			switch a.Approach {
			case "Reduce time range":
				haveTime = true
			case "Reduce spatial coverage":
				haveSpatial = true
			}
		}
		if !haveTime || !haveSpatial {
			t.Errorf("missing reductions (time=%v, spatial=%v)", haveTime, haveSpatial)
		}
	})

	t.Run("invalid latitude is a range error", func(t *testing.T) {
		_, err := g.Check(Query{LatRange: &[2]float64{-100, 20}}, 0)
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) || rangeErr.Kind != KindInvalidLatitude {
			t.Fatalf("err = %v, want invalid latitude RangeError", err)
		}
		if !strings.Contains(rangeErr.Message, "-100") {
			t.Errorf("message %q does not name the offending value", rangeErr.Message)
		}
	})

	t.Run("signed longitude normalizes without error", func(t *testing.T) {
		res, err := g.Check(Query{
			Frequency: FreqMonthly,
			StartDate: "2020-01",
			EndDate:   "2020-12",
			LatRange:  &[2]float64{10, 20},
			LonRange:  &[2]float64{-140, -50},
		}, 0)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if got := *res.Query.LonRange; got != [2]float64{220, 310} {
			t.Errorf("normalized lon = %v, want [220 310]", got)
		}
	})

	t.Run("single month is one time point", func(t *testing.T) {
		res, err := g.Check(Query{
			Frequency: FreqMonthly,
			StartDate: "2020-01",
			EndDate:   "2020-01",
			LatRange:  &[2]float64{10, 20},
			LonRange:  &[2]float64{10, 20},
		}, 0)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if res.Shape.TimePoints != 1 {
			t.Errorf("TimePoints = %d, want 1", res.Shape.TimePoints)
		}
	})

	t.Run("daily spans approximate months times thirty", func(t *testing.T) {
		res, err := g.Check(Query{
			Frequency: FreqDaily,
			StartDate: "2020-01-01",
			EndDate:   "2021-12-31",
			LatRange:  &[2]float64{10, 20},
			LonRange:  &[2]float64{10, 20},
		}, 0)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if res.Shape.TimePoints != 720 {
			t.Errorf("TimePoints = %d, want 720", res.Shape.TimePoints)
		}
	})
}

func TestCheckConcurrent(t *testing.T) {
	g := New(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := g.Check(smallQuery(), 15_000); err != nil {
					t.Errorf("Check: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestFormatWarning(t *testing.T) {
	g := New(DefaultConfig())
	res := deniedGlobalMonthly(t, g)

	msg := FormatWarning(res)
	for _, want := range []string{
		"## Response Too Large",
		"exceeds the safe limit",
		"**1. Reduce time range**",
		"```python",
		"### Tips",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("warning missing %q", want)
		}
	}
}
