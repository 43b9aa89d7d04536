// Package simulation runs the Monte Carlo sensitivity analysis: many
// deterministic valuations of one fixed cash-flow series under discount and
// terminal-growth rates drawn from independent normal distributions.
package simulation

import (
	"fmt"

	"dcf_valuation/pkg/core/projection"
	"dcf_valuation/pkg/core/valuation"
)

// DefaultMaxResamples bounds how often one trial redraws its rate pair before
// being discarded.
const DefaultMaxResamples = 10

// Config carries the stochastic parameters and run controls for a simulation.
type Config struct {
	WACCMean    float64 `json:"wacc_mean"`
	WACCStdev   float64 `json:"wacc_stdev"`
	GrowthMean  float64 `json:"growth_mean"`
	GrowthStdev float64 `json:"growth_stdev"`

	NetDebt           float64 `json:"net_debt"`
	SharesOutstanding float64 `json:"shares_outstanding"`

	Trials     int     `json:"trials"`
	Confidence float64 `json:"confidence"` // two-sided, e.g. 0.95

	// MaxResamples is the per-trial redraw bound for sampled pairs that
	// violate the discounting precondition; zero means DefaultMaxResamples.
	MaxResamples int `json:"max_resamples,omitempty"`

	// Seed, when set, makes the run bit-for-bit reproducible.
	Seed *uint64 `json:"seed,omitempty"`
}

func (c Config) validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trial count must be at least 1, got %d", valuation.ErrInvalidInput, c.Trials)
	}
	if c.WACCStdev < 0 || c.GrowthStdev < 0 {
		return fmt.Errorf("%w: standard deviations must be non-negative", valuation.ErrInvalidInput)
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("%w: confidence level must be in (0,1), got %v", valuation.ErrInvalidInput, c.Confidence)
	}
	if c.SharesOutstanding <= 0 {
		return fmt.Errorf("%w: shares outstanding must be positive, got %v", valuation.ErrInvalidInput, c.SharesOutstanding)
	}
	return nil
}

func (c Config) maxResamples() int {
	if c.MaxResamples > 0 {
		return c.MaxResamples
	}
	return DefaultMaxResamples
}

// Result is the simulation output: the per-trial fair values per share in
// trial order (write-once, read-only afterwards), their Summary, and the
// number of trials discarded under the resample policy.
type Result struct {
	Values    []float64 `json:"values"`
	Summary   Summary   `json:"summary"`
	Discarded int       `json:"discarded"`
}

// Run executes cfg.Trials Monte Carlo trials against the fixed cash-flow
// series, sampling WACC ~ N(WACCMean, WACCStdev) and terminal growth ~
// N(GrowthMean, GrowthStdev) independently per trial.
//
// Invalid-trial policy: a sampled pair that violates the discounting
// precondition is redrawn up to MaxResamples times, then the trial is
// discarded and counted in Result.Discarded. Discarded trials contribute no
// value, so len(Values) can be below cfg.Trials.
func Run(series projection.Series, finalFCF float64, cfg Config) (*Result, error) {
	waccSampler, growthSampler := normalSamplers(cfg)
	return RunWithSamplers(series, finalFCF, cfg, waccSampler, growthSampler)
}

// RunWithSamplers is Run with caller-supplied rate samplers, the injection
// point for deterministic tests.
func RunWithSamplers(series projection.Series, finalFCF float64, cfg Config, waccSampler, growthSampler Sampler) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: cash flow series is empty", valuation.ErrInvalidInput)
	}

	// The series is projected once and shared read-only across all trials;
	// only the rates vary.
	flows := series.Values()

	values := make([]float64, 0, cfg.Trials)
	discarded := 0

	for trial := 0; trial < cfg.Trials; trial++ {
		res, err := runTrial(flows, finalFCF, cfg, waccSampler, growthSampler)
		if err != nil {
			discarded++
			continue
		}
		values = append(values, res.FairValuePerShare)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: all %d trials discarded, sampled rates never satisfied discount > growth",
			valuation.ErrSampledParameter, cfg.Trials)
	}

	return &Result{
		Values:    values,
		Summary:   summarize(values, cfg.Confidence),
		Discarded: discarded,
	}, nil
}

// runTrial draws one rate pair (redrawing up to the resample bound) and runs
// the deterministic valuation with it.
func runTrial(flows []float64, finalFCF float64, cfg Config, waccSampler, growthSampler Sampler) (valuation.DCFResult, error) {
	var lastErr error
	for attempt := 0; attempt <= cfg.maxResamples(); attempt++ {
		wacc := waccSampler.Rand()
		growth := growthSampler.Rand()

		res, err := valuation.Evaluate(valuation.DCFInput{
			Series:            flows,
			FinalFCF:          finalFCF,
			DiscountRate:      wacc,
			TerminalGrowth:    growth,
			NetDebt:           cfg.NetDebt,
			SharesOutstanding: cfg.SharesOutstanding,
		})
		if err == nil {
			return res, nil
		}
		// Static inputs were validated up front, so a failure here means the
		// sampled pair broke a precondition. Redraw.
		lastErr = fmt.Errorf("%w: wacc=%v growth=%v: %v", valuation.ErrSampledParameter, wacc, growth, err)
	}
	return valuation.DCFResult{}, lastErr
}
