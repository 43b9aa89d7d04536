package projection

import (
	"errors"
	"math"
	"testing"

	"dcf_valuation/pkg/core/valuation"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestProject_TwoStageSeries(t *testing.T) {
	series, finalFCF, err := Project(100, TwoStage(2, 0.10, 3, 0.04))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{110, 121, 125.84, 130.8736, 136.108544}
	if len(series) != len(want) {
		t.Fatalf("expected %d periods, got %d", len(want), len(series))
	}
	for i, cf := range series {
		if cf.Period != i+1 {
			t.Errorf("period %d: expected index %d, got %d", i, i+1, cf.Period)
		}
		if !almostEqual(cf.Value, want[i]) {
			t.Errorf("period %d: expected %v, got %v", i+1, want[i], cf.Value)
		}
	}
	if !almostEqual(finalFCF, series[len(series)-1].Value) {
		t.Errorf("final FCF %v should equal last series value %v", finalFCF, series[len(series)-1].Value)
	}
}

func TestProject_LengthEqualsStageYears(t *testing.T) {
	stages := []GrowthStage{{Years: 3, Rate: 0.2}, {Years: 1, Rate: -0.05}, {Years: 4, Rate: 0.0}}
	series, _, err := Project(42.5, stages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != TotalYears(stages) {
		t.Errorf("expected %d periods, got %d", TotalYears(stages), len(series))
	}
}

func TestProject_EachValueCompounds(t *testing.T) {
	stages := []GrowthStage{{Years: 2, Rate: 0.07}, {Years: 3, Rate: -0.02}}
	series, _, err := Project(250, stages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := 250.0
	i := 0
	for _, st := range stages {
		for y := 0; y < st.Years; y++ {
			expected := prev * (1 + st.Rate)
			if !almostEqual(series[i].Value, expected) {
				t.Errorf("period %d: expected %v, got %v", i+1, expected, series[i].Value)
			}
			prev = series[i].Value
			i++
		}
	}
}

func TestProject_NegativeGrowthContracts(t *testing.T) {
	series, finalFCF, err := Project(100, []GrowthStage{{Years: 2, Rate: -0.5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(series[0].Value, 50) || !almostEqual(finalFCF, 25) {
		t.Errorf("expected [50 25], got [%v %v]", series[0].Value, finalFCF)
	}
}

func TestProject_InvalidInputs(t *testing.T) {
	cases := []struct {
		name       string
		initialFCF float64
		stages     []GrowthStage
	}{
		{"zero FCF", 0, TwoStage(2, 0.1, 3, 0.04)},
		{"negative FCF", -100, TwoStage(2, 0.1, 3, 0.04)},
		{"empty stages", 100, nil},
		{"zero-year stage", 100, []GrowthStage{{Years: 2, Rate: 0.1}, {Years: 0, Rate: 0.04}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Project(tc.initialFCF, tc.stages)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, valuation.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestProject_Pure(t *testing.T) {
	stages := TwoStage(2, 0.1, 3, 0.04)
	a, _, _ := Project(100, stages)
	b, _, _ := Project(100, stages)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("period %d differs between identical invocations", i+1)
		}
	}
}
