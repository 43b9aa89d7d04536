package config

import (
	"encoding/json"
	"net/http"

	"dcf_valuation/pkg/core/assumption"
)

// Response describes the scenario the server is currently seeded with.
type Response struct {
	Scenario assumption.Set `json:"scenario"`
	Source   string         `json:"source"` // scenario file path, or "default"
}

// Handler holds dependencies for config endpoints.
type Handler struct {
	Scenario assumption.Set
	Source   string
}

// NewHandler creates a new config handler.
func NewHandler(scenario assumption.Set, source string) *Handler {
	return &Handler{Scenario: scenario, Source: source}
}

// HandleConfig returns the active default scenario.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Scenario: h.Scenario, Source: h.Source})
}
