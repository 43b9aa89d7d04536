package simulation

import (
	"errors"
	"math"
	"testing"

	"dcf_valuation/pkg/core/projection"
	"dcf_valuation/pkg/core/valuation"
)

func fixtureSeries(t *testing.T) (projection.Series, float64) {
	t.Helper()
	series, finalFCF, err := projection.Project(100, projection.TwoStage(2, 0.10, 3, 0.04))
	if err != nil {
		t.Fatalf("projection failed: %v", err)
	}
	return series, finalFCF
}

func baseConfig() Config {
	return Config{
		WACCMean:          0.09,
		WACCStdev:         0.01,
		GrowthMean:        0.03,
		GrowthStdev:       0.005,
		NetDebt:           50,
		SharesOutstanding: 10,
		Trials:            1000,
		Confidence:        0.95,
	}
}

func seedPtr(v uint64) *uint64 { return &v }

// fixedSampler replays a fixed sequence, wrapping around.
type fixedSampler struct {
	vals []float64
	i    int
}

func (s *fixedSampler) Rand() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestRun_ZeroStdevMatchesDeterministic(t *testing.T) {
	series, finalFCF := fixtureSeries(t)

	cfg := baseConfig()
	cfg.WACCStdev = 0
	cfg.GrowthStdev = 0
	cfg.Trials = 200
	cfg.Seed = seedPtr(7)

	det, err := valuation.Evaluate(valuation.DCFInput{
		Series:            series.Values(),
		FinalFCF:          finalFCF,
		DiscountRate:      cfg.WACCMean,
		TerminalGrowth:    cfg.GrowthMean,
		NetDebt:           cfg.NetDebt,
		SharesOutstanding: cfg.SharesOutstanding,
	})
	if err != nil {
		t.Fatalf("deterministic evaluation failed: %v", err)
	}

	res, err := Run(series, finalFCF, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Values) != cfg.Trials {
		t.Fatalf("expected %d values, got %d", cfg.Trials, len(res.Values))
	}
	for i, v := range res.Values {
		if v != det.FairValuePerShare {
			t.Fatalf("trial %d: expected constant %v, got %v", i, det.FairValuePerShare, v)
		}
	}
	if res.Summary.StdDev != 0 {
		t.Errorf("constant distribution should have zero stdev, got %v", res.Summary.StdDev)
	}
	if res.Summary.RiskRatio != 0 {
		t.Errorf("constant distribution should have zero risk ratio, got %v", res.Summary.RiskRatio)
	}
}

func TestRun_SeededReproducible(t *testing.T) {
	series, finalFCF := fixtureSeries(t)

	cfg := baseConfig()
	cfg.Seed = seedPtr(42)

	a, err := Run(series, finalFCF, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Run(series, finalFCF, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.Values) != len(b.Values) {
		t.Fatalf("value counts differ: %d vs %d", len(a.Values), len(b.Values))
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("trial %d differs between seeded runs: %v vs %v", i, a.Values[i], b.Values[i])
		}
	}
	if a.Summary != b.Summary {
		t.Errorf("summaries differ between seeded runs: %+v vs %+v", a.Summary, b.Summary)
	}
	if a.Discarded != b.Discarded {
		t.Errorf("discard counts differ: %d vs %d", a.Discarded, b.Discarded)
	}
}

func TestRun_DistributionShape(t *testing.T) {
	series, finalFCF := fixtureSeries(t)

	cfg := baseConfig()
	cfg.Trials = 10000
	cfg.Seed = seedPtr(1)

	res, err := Run(series, finalFCF, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := res.Summary
	if !(s.CILow < s.Mean && s.Mean < s.CIHigh) {
		t.Errorf("confidence interval should bracket the mean: low %v, mean %v, high %v", s.CILow, s.Mean, s.CIHigh)
	}
	if s.RiskRatio <= 0 || math.IsInf(s.RiskRatio, 0) || math.IsNaN(s.RiskRatio) {
		t.Errorf("risk ratio should be strictly positive and finite, got %v", s.RiskRatio)
	}
	if s.CILow >= s.Median || s.Median >= s.CIHigh {
		t.Errorf("median %v should sit inside the interval [%v, %v]", s.Median, s.CILow, s.CIHigh)
	}
}

func TestRunWithSamplers_ResamplesInvalidPair(t *testing.T) {
	series, finalFCF := fixtureSeries(t)

	cfg := baseConfig()
	cfg.Trials = 1

	// First pair violates wacc > g, second is valid: one resample, no discard.
	wacc := &fixedSampler{vals: []float64{0.02, 0.09}}
	growth := &fixedSampler{vals: []float64{0.05, 0.03}}

	res, err := RunWithSamplers(series, finalFCF, cfg, wacc, growth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Discarded != 0 {
		t.Errorf("expected 0 discarded trials, got %d", res.Discarded)
	}
	if len(res.Values) != 1 {
		t.Fatalf("expected 1 value, got %d", len(res.Values))
	}
}

func TestRunWithSamplers_DiscardsAfterRetryBound(t *testing.T) {
	series, finalFCF := fixtureSeries(t)

	cfg := baseConfig()
	cfg.Trials = 5
	cfg.MaxResamples = 3

	// Growth always exceeds WACC: every trial exhausts its retries.
	wacc := &fixedSampler{vals: []float64{0.02}}
	growth := &fixedSampler{vals: []float64{0.05}}

	_, err := RunWithSamplers(series, finalFCF, cfg, wacc, growth)
	if err == nil {
		t.Fatal("expected error when every trial is discarded")
	}
	if !errors.Is(err, valuation.ErrSampledParameter) {
		t.Errorf("expected ErrSampledParameter, got %v", err)
	}
}

func TestRunWithSamplers_ReportsPartialDiscards(t *testing.T) {
	series, finalFCF := fixtureSeries(t)

	cfg := baseConfig()
	cfg.Trials = 3
	cfg.MaxResamples = 1

	// Trial 1 draws twice (invalid, invalid) -> discarded.
	// Trials 2 and 3 draw valid pairs.
	wacc := &fixedSampler{vals: []float64{0.02, 0.02, 0.09, 0.09}}
	growth := &fixedSampler{vals: []float64{0.05, 0.05, 0.03, 0.03}}

	res, err := RunWithSamplers(series, finalFCF, cfg, wacc, growth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Discarded != 1 {
		t.Errorf("expected 1 discarded trial, got %d", res.Discarded)
	}
	if len(res.Values) != 2 {
		t.Errorf("expected 2 surviving values, got %d", len(res.Values))
	}
	if res.Summary.Trials != 2 {
		t.Errorf("summary should count surviving trials, got %d", res.Summary.Trials)
	}
}

func TestRun_ConfigValidation(t *testing.T) {
	series, finalFCF := fixtureSeries(t)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero trials", func(c *Config) { c.Trials = 0 }},
		{"negative wacc stdev", func(c *Config) { c.WACCStdev = -0.01 }},
		{"confidence at 1", func(c *Config) { c.Confidence = 1 }},
		{"confidence at 0", func(c *Config) { c.Confidence = 0 }},
		{"zero shares", func(c *Config) { c.SharesOutstanding = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			tc.mutate(&cfg)
			if _, err := Run(series, finalFCF, cfg); !errors.Is(err, valuation.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRun_EmptySeries(t *testing.T) {
	if _, err := Run(nil, 100, baseConfig()); !errors.Is(err, valuation.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
