package simulation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"dcf_valuation/pkg/core/valuation"
)

// Summary holds the derived statistics of a simulated fair-value distribution.
// StdDev is the sample standard deviation (n-1 denominator). The confidence
// interval is empirical: quantiles of the realized distribution, not a
// normal-theory interval, since the output distribution need not be normal.
type Summary struct {
	Trials     int     `json:"trials"` // valid trials contributing values
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
	Confidence float64 `json:"confidence"` // e.g. 0.95
	CILow      float64 `json:"ci_low"`
	CIHigh     float64 `json:"ci_high"`
	RiskRatio  float64 `json:"risk_ratio"` // stdev/mean; NaN when mean is zero
}

// RiskRatio computes stdev/mean, the dispersion of the distribution relative
// to its central value. A zero mean leaves the ratio undefined.
func RiskRatio(mean, stdev float64) (float64, error) {
	if mean == 0 {
		return math.NaN(), valuation.ErrDegenerateDistribution
	}
	return stdev / mean, nil
}

// summarize derives Summary from the per-trial values at the given two-sided
// confidence level. values must be non-empty; it is not modified.
func summarize(values []float64, confidence float64) Summary {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := stat.Mean(sorted, nil)
	stdev := 0.0
	if len(sorted) > 1 {
		stdev = stat.StdDev(sorted, nil)
	}

	alpha := (1 - confidence) / 2
	ratio, err := RiskRatio(mean, stdev)
	if err != nil {
		ratio = math.NaN()
	}

	return Summary{
		Trials:     len(sorted),
		Mean:       mean,
		Median:     stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev:     stdev,
		Confidence: confidence,
		CILow:      stat.Quantile(alpha, stat.Empirical, sorted, nil),
		CIHigh:     stat.Quantile(1-alpha, stat.Empirical, sorted, nil),
		RiskRatio:  ratio,
	}
}
