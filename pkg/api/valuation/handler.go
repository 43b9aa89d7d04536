package valuation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dcf_valuation/pkg/core/assumption"
	"dcf_valuation/pkg/core/projection"
	"dcf_valuation/pkg/core/simulation"
	corevaluation "dcf_valuation/pkg/core/valuation"
)

// Handler serves the deterministic and Monte Carlo valuation endpoints.
// Request bodies are assumption sets; omitted fields fall back to the
// handler's default scenario.
type Handler struct {
	Defaults assumption.Set
}

// NewHandler creates a valuation handler seeded with a default scenario.
func NewHandler(defaults assumption.Set) *Handler {
	return &Handler{Defaults: defaults}
}

// SimulateRequest wraps an assumption set with response-shaping options.
type SimulateRequest struct {
	assumption.Set
	// IncludeValues echoes the per-trial sequence in the response. Capped at
	// ValuesCap entries to keep payloads bounded.
	IncludeValues bool `json:"include_values"`
}

// ValuesCap bounds the echoed per-trial sequence.
const ValuesCap = 50000

type dcfResponse struct {
	Scenario string                  `json:"scenario"`
	Series   projection.Series       `json:"series"`
	Result   corevaluation.DCFResult `json:"result"`
}

type simulateResponse struct {
	Scenario  string             `json:"scenario"`
	Summary   simulation.Summary `json:"summary"`
	Discarded int                `json:"discarded"`
	Values    []float64          `json:"values,omitempty"`
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// statusFor maps core error kinds to HTTP statuses.
func statusFor(err error) int {
	if errors.Is(err, corevaluation.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, corevaluation.ErrSampledParameter) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// HandleDCF runs the base-case deterministic valuation.
func (h *Handler) HandleDCF(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	set := h.Defaults
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := set.Validate(); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	fmt.Printf("[VALUATION] DCF request: %s (FCF %.0f, %d stages)\n", set.Name, set.InitialFCF, len(set.Stages))

	series, finalFCF, err := set.Project()
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	result, err := corevaluation.Evaluate(set.DCFInput(series, finalFCF))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dcfResponse{Scenario: set.Name, Series: series, Result: result})
}

// HandleSimulate runs the Monte Carlo sensitivity pass.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	req := SimulateRequest{Set: h.Defaults}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	set := req.Set
	if err := set.Validate(); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	fmt.Printf("[VALUATION] Simulate request: %s (%d trials)\n", set.Name, set.Trials)

	series, finalFCF, err := set.Project()
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	result, err := simulation.Run(series, finalFCF, set.SimulationConfig())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp := simulateResponse{Scenario: set.Name, Summary: result.Summary, Discarded: result.Discarded}
	if req.IncludeValues {
		values := result.Values
		if len(values) > ValuesCap {
			values = values[:ValuesCap]
		}
		resp.Values = values
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
