package projection

// GrowthStage defines one stage of the explicit projection: Years consecutive
// periods growing at Rate. Rate may be negative (contraction).
type GrowthStage struct {
	Years int     `json:"years" yaml:"years"`
	Rate  float64 `json:"rate" yaml:"rate"`
}

// CashFlow is one projected period. Period is 1-indexed from the first
// projected year; the seed FCF (period 0) is never part of the series.
type CashFlow struct {
	Period int     `json:"period"`
	Value  float64 `json:"value"`
}

// Series is the explicit-period cash flow sequence, strictly time-ordered
// with no gaps. Length equals the sum of stage years.
type Series []CashFlow

// Values returns the bare cash flow amounts in period order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, cf := range s {
		out[i] = cf.Value
	}
	return out
}

// TotalYears sums the stage durations.
func TotalYears(stages []GrowthStage) int {
	total := 0
	for _, st := range stages {
		total += st.Years
	}
	return total
}

// TwoStage builds the classic two-stage schedule: an initial high-growth
// stage followed by a step-down stage.
func TwoStage(initialYears int, initialRate float64, stepDownYears int, stepDownRate float64) []GrowthStage {
	return []GrowthStage{
		{Years: initialYears, Rate: initialRate},
		{Years: stepDownYears, Rate: stepDownRate},
	}
}
