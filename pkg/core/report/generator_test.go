package report

import (
	"strings"
	"testing"

	"dcf_valuation/pkg/core/assumption"
	"dcf_valuation/pkg/core/simulation"
	"dcf_valuation/pkg/core/valuation"
)

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		name  string
		mean  float64
		stdev float64
		want  RiskLevel
	}{
		{"low at boundary", 100, 15, RiskLow},
		{"moderate", 100, 20, RiskModerate},
		{"moderate at boundary", 100, 30, RiskModerate},
		{"high", 100, 31, RiskHigh},
		{"zero mean", 0, 10, RiskNA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyRisk(tc.mean, tc.stdev); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBinValues(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	bins := BinValues(values, 5)
	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(values) {
		t.Errorf("bins should cover all values: counted %d of %d", total, len(values))
	}
	// Maximum lands in the final (closed) bin.
	if bins[4].Count == 0 {
		t.Error("final bin should contain the maximum")
	}
}

func TestBinValues_ConstantData(t *testing.T) {
	bins := BinValues([]float64{5, 5, 5}, 4)
	if bins[0].Count != 3 {
		t.Errorf("constant data should collapse into the first bin, got %+v", bins)
	}
}

func simResult() *simulation.Result {
	values := []float64{180, 190, 195, 200, 205, 210, 220}
	return &simulation.Result{
		Values:  values,
		Summary: simulation.Summary{Trials: len(values), Mean: 200, Median: 200, StdDev: 13, Confidence: 0.95, CILow: 180, CIHigh: 220, RiskRatio: 0.065},
	}
}

func TestGenerate(t *testing.T) {
	set := assumption.Default()
	set.Company = "ACME Corp"
	det := valuation.DCFResult{FairValuePerShare: 198.5, EnterpriseValue: 2.0e9, EquityValue: 1.98e9}

	doc, err := Generate(set, det, simResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, section := range []string{
		"# DCF Valuation Analysis — ACME Corp",
		"## Key Model Inputs (Base Case)",
		"## Valuation Results",
		"## Interpretation of the Value Distribution",
		"## Value Distribution",
	} {
		if !strings.Contains(doc, section) {
			t.Errorf("report missing section %q", section)
		}
	}
	if !strings.Contains(doc, "$50,000,000") {
		t.Error("input table should format FCF with thousands separators")
	}
	if !strings.Contains(doc, string(RiskLow)) {
		t.Errorf("expected risk level %q in report", RiskLow)
	}
}

func TestGenerate_ReportsDiscards(t *testing.T) {
	sim := simResult()
	sim.Discarded = 12

	doc, err := Generate(assumption.Default(), valuation.DCFResult{FairValuePerShare: 198.5}, sim)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "Discarded trials") {
		t.Error("report should surface the discard count")
	}
}
