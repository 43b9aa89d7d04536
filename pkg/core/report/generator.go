// Package report renders completed valuation runs as Markdown: the input
// table, base case vs simulation comparison, a distribution interpretation,
// and a text histogram. Binning and risk coloring live here, on the
// presentation side of the engine boundary.
package report

import (
	"fmt"
	"math"
	"strings"

	"dcf_valuation/pkg/core/assumption"
	"dcf_valuation/pkg/core/simulation"
	"dcf_valuation/pkg/core/utils"
	"dcf_valuation/pkg/core/valuation"
)

// DefaultBins is the histogram resolution used when callers do not choose one.
const DefaultBins = 20

// Bin is one histogram bucket over [Low, High).
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// BinValues buckets values into `bins` equal-width bins spanning the data
// range. The final bin is closed on both ends so the maximum lands in it.
func BinValues(values []float64, bins int) []Bin {
	if len(values) == 0 || bins < 1 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Low: lo + float64(i)*width, High: lo + float64(i+1)*width}
	}
	if width == 0 {
		out[0].Count = len(values)
		return out
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// Generate produces the full Markdown analysis for one completed run.
func Generate(set assumption.Set, det valuation.DCFResult, sim *simulation.Result) (string, error) {
	var b strings.Builder

	title := set.Name
	if set.Company != "" {
		title = set.Company
	}
	fmt.Fprintf(&b, "# DCF Valuation Analysis — %s\n\n", title)

	writeInputTable(&b, set)
	writeResults(&b, det, sim)
	writeInterpretation(&b, sim)
	writeHistogram(&b, sim.Values)

	doc := b.String()
	if !utils.ValidateMarkdown(doc) {
		return "", fmt.Errorf("generated report failed markdown validation")
	}
	return doc, nil
}

func writeInputTable(b *strings.Builder, set assumption.Set) {
	b.WriteString("## Key Model Inputs (Base Case)\n\n")
	b.WriteString("| Parameter | Value | Notes |\n")
	b.WriteString("| :--- | :--- | :--- |\n")
	fmt.Fprintf(b, "| Initial FCF (Year 0) | $%s | Base for FCF projections. |\n", commas(set.InitialFCF))
	fmt.Fprintf(b, "| Net Debt | $%s | Subtracted to find Equity Value. |\n", commas(set.NetDebt))
	fmt.Fprintf(b, "| Shares Outstanding | %s | Used for per-share calculation. |\n", commas(set.SharesOutstanding))
	fmt.Fprintf(b, "| WACC (Mean Discount Rate) | %.2f%% | Primary discounting factor. |\n", set.WACCMean*100)
	for i, st := range set.Stages {
		fmt.Fprintf(b, "| Growth Stage %d | %.1f%% x %d years | Explicit projection stage. |\n", i+1, st.Rate*100, st.Years)
	}
	fmt.Fprintf(b, "| Perpetuity Growth (g Mean) | %.2f%% | Long-term growth assumption. |\n\n", set.GrowthMean*100)
}

func writeResults(b *strings.Builder, det valuation.DCFResult, sim *simulation.Result) {
	s := sim.Summary
	b.WriteString("## Valuation Results\n\n")
	fmt.Fprintf(b, "- Base case fair value per share: **$%.2f**\n", det.FairValuePerShare)
	fmt.Fprintf(b, "- Simulation mean: **$%.2f** (median $%.2f)\n", s.Mean, s.Median)
	fmt.Fprintf(b, "- Std. dev. (risk): $%.2f\n", s.StdDev)
	fmt.Fprintf(b, "- %.0f%% confidence range: $%.2f to $%.2f\n", s.Confidence*100, s.CILow, s.CIHigh)
	fmt.Fprintf(b, "- Risk level: %s\n", ClassifyRisk(s.Mean, s.StdDev))
	if sim.Discarded > 0 {
		fmt.Fprintf(b, "- Discarded trials (sampled WACC <= g after resampling): %d of %d\n", sim.Discarded, s.Trials+sim.Discarded)
	}
	b.WriteString("\n")
}

// writeInterpretation mirrors the analyst commentary of the original model:
// dispersion adjective from the CV bucket, plus a skew remark from the
// mean/median relationship.
func writeInterpretation(b *strings.Builder, sim *simulation.Result) {
	s := sim.Summary
	var adjective, skew string
	cv := math.NaN()
	if s.Mean != 0 {
		cv = s.StdDev / s.Mean
	}
	switch {
	case cv <= lowRiskCV:
		adjective = "limited"
		skew = "The distribution is highly symmetrical, indicating uniform uncertainty across the range."
	case cv <= moderateRiskCV:
		adjective = "significant"
		skew = fmt.Sprintf("The mean ($%.2f) sits above the median ($%.2f), a slight positive skew with a longer tail towards higher values.", s.Mean, s.Median)
	default:
		adjective = "extreme"
		skew = "The distribution shows notable positive skew: a higher, though less probable, potential upside."
	}

	b.WriteString("## Interpretation of the Value Distribution\n\n")
	fmt.Fprintf(b,
		"The histogram shows a %s dispersion around the mean (std. dev. $%.2f). "+
			"The %.0f%% confidence interval ($%.2f to $%.2f) quantifies how sensitive the valuation is to "+
			"volatility in the discount rate and the perpetuity growth rate. %s\n\n",
		adjective, s.StdDev, s.Confidence*100, s.CILow, s.CIHigh, skew)
}

func writeHistogram(b *strings.Builder, values []float64) {
	bins := BinValues(values, DefaultBins)
	if len(bins) == 0 {
		return
	}
	maxCount := 0
	for _, bin := range bins {
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
	}
	b.WriteString("## Value Distribution\n\n```\n")
	for _, bin := range bins {
		barLen := 0
		if maxCount > 0 {
			barLen = bin.Count * 50 / maxCount
		}
		fmt.Fprintf(b, "%10.2f - %10.2f | %-50s %d\n", bin.Low, bin.High, strings.Repeat("#", barLen), bin.Count)
	}
	b.WriteString("```\n")
}

// commas formats a float with thousands separators and no decimals, for the
// large dollar amounts in the input table.
func commas(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.0f", math.Abs(v))
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
