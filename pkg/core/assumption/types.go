// Package assumption defines the Set of inputs a valuation run needs: the
// company base parameters, the staged growth schedule, and the stochastic
// rate distributions for the Monte Carlo pass. Sets are loaded from YAML or
// HJSON scenario files, or start from Default().
package assumption

import (
	"fmt"

	"dcf_valuation/pkg/core/projection"
	"dcf_valuation/pkg/core/simulation"
	"dcf_valuation/pkg/core/valuation"
)

// Set is one complete, immutable-per-run scenario.
type Set struct {
	Name    string `json:"name" yaml:"name"`
	Company string `json:"company,omitempty" yaml:"company,omitempty"`

	// Company base parameters
	InitialFCF        float64 `json:"initial_fcf" yaml:"initial_fcf"`
	NetDebt           float64 `json:"net_debt" yaml:"net_debt"` // negative = net cash
	SharesOutstanding float64 `json:"shares_outstanding" yaml:"shares_outstanding"`

	// Explicit projection schedule, in time order.
	Stages []projection.GrowthStage `json:"stages" yaml:"stages"`

	// Discount rate distribution. WACCMean doubles as the base-case rate.
	// When WACCBuildup is present, WACCMean is derived from it at load time.
	WACCMean    float64              `json:"wacc_mean" yaml:"wacc_mean"`
	WACCStdev   float64              `json:"wacc_stdev" yaml:"wacc_stdev"`
	WACCBuildup *valuation.WACCInput `json:"wacc_buildup,omitempty" yaml:"wacc_buildup,omitempty"`

	// Terminal growth distribution. GrowthMean doubles as the base-case rate.
	GrowthMean  float64 `json:"growth_mean" yaml:"growth_mean"`
	GrowthStdev float64 `json:"growth_stdev" yaml:"growth_stdev"`

	// Simulation controls
	Trials     int     `json:"trials" yaml:"trials"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Seed       *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Default returns the baseline scenario: a mid-size company with a five-year
// two-stage projection.
func Default() Set {
	return Set{
		Name:              "baseline",
		InitialFCF:        50_000_000,
		NetDebt:           20_000_000,
		SharesOutstanding: 10_000_000,
		Stages:            projection.TwoStage(2, 0.15, 3, 0.08),
		WACCMean:          0.085,
		WACCStdev:         0.01,
		GrowthMean:        0.025,
		GrowthStdev:       0.005,
		Trials:            10000,
		Confidence:        0.95,
	}
}

// Validate checks the static inputs once, before any computation. Per-trial
// sampled rates are re-checked by the engine itself.
func (s Set) Validate() error {
	if s.InitialFCF <= 0 {
		return fmt.Errorf("%w: initial FCF must be positive, got %v", valuation.ErrInvalidInput, s.InitialFCF)
	}
	if len(s.Stages) == 0 {
		return fmt.Errorf("%w: at least one growth stage is required", valuation.ErrInvalidInput)
	}
	for i, st := range s.Stages {
		if st.Years < 1 {
			return fmt.Errorf("%w: stage %d has %d years, need at least 1", valuation.ErrInvalidInput, i+1, st.Years)
		}
	}
	if s.SharesOutstanding <= 0 {
		return fmt.Errorf("%w: shares outstanding must be positive, got %v", valuation.ErrInvalidInput, s.SharesOutstanding)
	}
	if s.WACCMean <= s.GrowthMean {
		return fmt.Errorf("%w: base-case WACC %v must exceed terminal growth %v (terminal value diverges)",
			valuation.ErrInvalidInput, s.WACCMean, s.GrowthMean)
	}
	if s.WACCStdev < 0 || s.GrowthStdev < 0 {
		return fmt.Errorf("%w: standard deviations must be non-negative", valuation.ErrInvalidInput)
	}
	if s.Trials < 1 {
		return fmt.Errorf("%w: trial count must be at least 1, got %d", valuation.ErrInvalidInput, s.Trials)
	}
	if s.Confidence <= 0 || s.Confidence >= 1 {
		return fmt.Errorf("%w: confidence level must be in (0,1), got %v", valuation.ErrInvalidInput, s.Confidence)
	}
	return nil
}

// Project runs the cash-flow projector for this scenario.
func (s Set) Project() (projection.Series, float64, error) {
	return projection.Project(s.InitialFCF, s.Stages)
}

// DCFInput builds the base-case deterministic input for an already projected
// series.
func (s Set) DCFInput(series projection.Series, finalFCF float64) valuation.DCFInput {
	return valuation.DCFInput{
		Series:            series.Values(),
		FinalFCF:          finalFCF,
		DiscountRate:      s.WACCMean,
		TerminalGrowth:    s.GrowthMean,
		NetDebt:           s.NetDebt,
		SharesOutstanding: s.SharesOutstanding,
	}
}

// SimulationConfig builds the Monte Carlo configuration for this scenario.
func (s Set) SimulationConfig() simulation.Config {
	return simulation.Config{
		WACCMean:          s.WACCMean,
		WACCStdev:         s.WACCStdev,
		GrowthMean:        s.GrowthMean,
		GrowthStdev:       s.GrowthStdev,
		NetDebt:           s.NetDebt,
		SharesOutstanding: s.SharesOutstanding,
		Trials:            s.Trials,
		Confidence:        s.Confidence,
		Seed:              s.Seed,
	}
}
