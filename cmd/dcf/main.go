package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"dcf_valuation/pkg/core/assumption"
	"dcf_valuation/pkg/core/report"
	"dcf_valuation/pkg/core/simulation"
	"dcf_valuation/pkg/core/store"
	"dcf_valuation/pkg/core/valuation"
)

func main() {
	scenarioPath := flag.String("scenario", "", "scenario file (.yaml, .yml, .hjson, .json); baseline when empty")
	trials := flag.Int("trials", 0, "override trial count")
	seed := flag.Uint64("seed", 0, "random seed for a reproducible run (0 = time-seeded)")
	reportPath := flag.String("report", "", "write a Markdown analysis report to this path")
	save := flag.Bool("save", false, "persist the run to Postgres (requires DATABASE_URL)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	set := assumption.Default()
	if *scenarioPath != "" {
		loaded, err := assumption.Load(*scenarioPath)
		if err != nil {
			log.Fatalf("scenario load failed: %v", err)
		}
		set = loaded
	}
	if *trials > 0 {
		set.Trials = *trials
	}
	if *seed != 0 {
		set.Seed = seed
	}
	if err := set.Validate(); err != nil {
		log.Fatalf("invalid scenario: %v", err)
	}

	fmt.Printf("[DCF] Scenario %q: FCF %.0f, net debt %.0f, %.0f shares, %d stages\n",
		set.Name, set.InitialFCF, set.NetDebt, set.SharesOutstanding, len(set.Stages))

	// 1. Project explicit cash flows
	series, finalFCF, err := set.Project()
	if err != nil {
		log.Fatalf("projection failed: %v", err)
	}
	fmt.Printf("[DCF] Projected %d periods, final FCF %.2f\n", len(series), finalFCF)

	// 2. Base case
	det, err := valuation.Evaluate(set.DCFInput(series, finalFCF))
	if err != nil {
		log.Fatalf("base case valuation failed: %v", err)
	}
	fmt.Printf("[DCF] Base case: EV %.0f, equity %.0f, fair value/share %.2f\n",
		det.EnterpriseValue, det.EquityValue, det.FairValuePerShare)

	// 3. Monte Carlo sensitivity
	sim, err := simulation.Run(series, finalFCF, set.SimulationConfig())
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}
	s := sim.Summary
	fmt.Printf("[SIM] %d trials (%d discarded): mean %.2f, median %.2f, stdev %.2f\n",
		s.Trials, sim.Discarded, s.Mean, s.Median, s.StdDev)
	fmt.Printf("[SIM] %.0f%% confidence: %.2f to %.2f | risk ratio %.4f (%s)\n",
		s.Confidence*100, s.CILow, s.CIHigh, s.RiskRatio, report.ClassifyRisk(s.Mean, s.StdDev))

	// 4. Report
	if *reportPath != "" {
		doc, err := report.Generate(set, det, sim)
		if err != nil {
			log.Fatalf("report generation failed: %v", err)
		}
		if err := os.WriteFile(*reportPath, []byte(doc), 0o644); err != nil {
			log.Fatalf("report write failed: %v", err)
		}
		fmt.Printf("[REPORT] Wrote %s\n", *reportPath)
	}

	// 5. Optional persistence
	if *save {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("store init failed: %v", err)
		}
		defer store.Close()
		record := store.NewRunRecord(set, det, sim)
		if err := store.NewRunRepo().Save(ctx, record); err != nil {
			log.Fatalf("run save failed: %v", err)
		}
		fmt.Printf("[STORE] Saved run %s\n", record.ID)
	}
}
