package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apiconfig "dcf_valuation/pkg/api/config"
	apivaluation "dcf_valuation/pkg/api/valuation"
	"dcf_valuation/pkg/core/assumption"
	"dcf_valuation/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Default scenario: SCENARIO_FILE if set, baseline otherwise
	scenario := assumption.Default()
	source := "default"
	if path := os.Getenv("SCENARIO_FILE"); path != "" {
		loaded, err := assumption.Load(path)
		if err != nil {
			fmt.Printf("[WARNING] Failed to load scenario %s: %v\n", path, err)
			fmt.Println("  Falling back to baseline scenario")
		} else {
			scenario = loaded
			source = path
			fmt.Printf("[CONFIG] Loaded scenario %q from %s\n", scenario.Name, path)
		}
	}

	// Optional persistence
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database unavailable, runs will not be persisted: %v\n", err)
		} else {
			defer store.Close()
			fmt.Println("[STORE] Database pool initialized")
		}
	}

	// Config endpoints
	configHandler := apiconfig.NewHandler(scenario, source)
	http.HandleFunc("/api/config", configHandler.HandleConfig)

	// Valuation endpoints
	valuationHandler := apivaluation.NewHandler(scenario)
	http.HandleFunc("/api/valuation/dcf", valuationHandler.HandleDCF)
	http.HandleFunc("/api/valuation/simulate", valuationHandler.HandleSimulate)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("[SERVER] Listening on :%s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server error: %v\n", err)
		os.Exit(1)
	}
}
