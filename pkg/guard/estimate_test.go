package guard

import "testing"

func TestEstimateChain(t *testing.T) {
	g := New(DefaultConfig())

	// 12 × 10 × 10 float32 grid.
	est := g.Estimate(GridShape{TimePoints: 12, LatPoints: 10, LonPoints: 10})

	if want := 12 * 10 * 10 * 4; est.RawBytes != want {
		t.Errorf("RawBytes = %d, want %d", est.RawBytes, want)
	}
	if want := int(float64(4800)*2.5) + 5000; est.JSONBytes != want {
		t.Errorf("JSONBytes = %d, want %d", est.JSONBytes, want)
	}
	if want := 17000 / 3; est.EstimatedTokens != want {
		t.Errorf("EstimatedTokens = %d, want %d", est.EstimatedTokens, want)
	}
}

func TestEstimateChainNonDecreasing(t *testing.T) {
	g := New(DefaultConfig())

	for _, shape := range []GridShape{
		{1, 1, 1},
		{12, 10, 10},
		{3012, 180, 360},
	} {
		est := g.Estimate(shape)
		if est.JSONBytes < est.RawBytes {
			t.Errorf("shape %v: JSONBytes %d < RawBytes %d", shape, est.JSONBytes, est.RawBytes)
		}
		if est.EstimatedTokens < 0 {
			t.Errorf("shape %v: negative tokens %d", shape, est.EstimatedTokens)
		}
	}
}

func TestEstimateMonotonicity(t *testing.T) {
	g := New(DefaultConfig())
	base := GridShape{TimePoints: 24, LatPoints: 30, LonPoints: 40}

	grow := []struct {
		name string
		next GridShape
	}{
		{"time", GridShape{base.TimePoints + 1, base.LatPoints, base.LonPoints}},
		{"lat", GridShape{base.TimePoints, base.LatPoints + 1, base.LonPoints}},
		{"lon", GridShape{base.TimePoints, base.LatPoints, base.LonPoints + 1}},
	}

	baseTokens := g.Estimate(base).EstimatedTokens
	for _, tt := range grow {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Estimate(tt.next).EstimatedTokens; got < baseTokens {
				t.Errorf("growing %s shrank the estimate: %d < %d", tt.name, got, baseTokens)
			}
		})
	}

	// Sweep one dimension and require non-decreasing estimates throughout.
	prev := -1
	for tp := 1; tp <= 512; tp *= 2 {
		got := g.Estimate(GridShape{TimePoints: tp, LatPoints: 10, LonPoints: 10}).EstimatedTokens
		if got < prev {
			t.Fatalf("estimate not monotone in time: f(%d) = %d < %d", tp, got, prev)
		}
		prev = got
	}
}

func TestEstimateFloat64Elements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BytesPerElement = 8
	g := New(cfg)

	est := g.Estimate(GridShape{TimePoints: 12, LatPoints: 10, LonPoints: 10})
	if want := 12 * 10 * 10 * 8; est.RawBytes != want {
		t.Errorf("RawBytes = %d, want %d", est.RawBytes, want)
	}
}

func TestEstimateWithoutMetadata(t *testing.T) {
	g := New(DefaultConfig())
	shape := GridShape{TimePoints: 12, LatPoints: 10, LonPoints: 10}

	with := g.estimate(shape, true)
	without := g.estimate(shape, false)
	if with.JSONBytes-without.JSONBytes != g.Config().MetadataOverheadBytes {
		t.Errorf("metadata overhead = %d, want %d", with.JSONBytes-without.JSONBytes, g.Config().MetadataOverheadBytes)
	}
}
