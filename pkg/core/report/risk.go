package report

import "math"

// RiskLevel classifies the simulated distribution by its coefficient of
// variation (stdev relative to mean).
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low Risk (Good)"
	RiskModerate RiskLevel = "Moderate Risk (Fair)"
	RiskHigh     RiskLevel = "High Risk (Poor)"
	RiskNA       RiskLevel = "N/A"
)

// CV thresholds for the risk buckets.
const (
	lowRiskCV      = 0.15
	moderateRiskCV = 0.30
)

// ClassifyRisk maps mean and stdev of the simulated per-share distribution to
// a risk level. A zero or non-finite mean yields RiskNA.
func ClassifyRisk(mean, stdev float64) RiskLevel {
	if mean == 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return RiskNA
	}
	cv := stdev / mean
	switch {
	case cv <= lowRiskCV:
		return RiskLow
	case cv <= moderateRiskCV:
		return RiskModerate
	default:
		return RiskHigh
	}
}
