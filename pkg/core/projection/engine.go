// Package projection produces the explicit-period free cash flow series for
// a staged growth schedule. It is the first half of the valuation pipeline;
// pkg/core/valuation discounts what this package projects.
package projection

import (
	"fmt"

	"dcf_valuation/pkg/core/valuation"
)

// Project compounds initialFCF through the staged growth schedule and returns
// the full explicit-period series plus the final projected FCF (the seed for
// the terminal value).
//
// Pure function: it is re-invoked freely across Monte Carlo trials, and the
// returned Series is owned by the caller.
func Project(initialFCF float64, stages []GrowthStage) (Series, float64, error) {
	if initialFCF <= 0 {
		return nil, 0, fmt.Errorf("%w: initial FCF must be positive, got %v", valuation.ErrInvalidInput, initialFCF)
	}
	if len(stages) == 0 {
		return nil, 0, fmt.Errorf("%w: growth stages must not be empty", valuation.ErrInvalidInput)
	}
	for i, st := range stages {
		if st.Years < 1 {
			return nil, 0, fmt.Errorf("%w: stage %d has %d years, need at least 1", valuation.ErrInvalidInput, i+1, st.Years)
		}
	}

	series := make(Series, 0, TotalYears(stages))
	fcf := initialFCF
	period := 0
	for _, st := range stages {
		for y := 0; y < st.Years; y++ {
			period++
			fcf *= 1 + st.Rate
			series = append(series, CashFlow{Period: period, Value: fcf})
		}
	}

	return series, fcf, nil
}
