// Package store persists completed valuation runs to Postgres as JSONB
// records, keyed by a generated run id.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dcf_valuation/pkg/core/assumption"
	"dcf_valuation/pkg/core/simulation"
	"dcf_valuation/pkg/core/valuation"
)

// RunRecord is one persisted valuation run. The full per-trial value sequence
// is not stored; the summary plus the seed is enough to reproduce it.
type RunRecord struct {
	ID            string              `json:"id"`
	Scenario      string              `json:"scenario"`
	Assumptions   assumption.Set      `json:"assumptions"`
	Deterministic valuation.DCFResult `json:"deterministic"`
	Summary       simulation.Summary  `json:"summary"`
	Discarded     int                 `json:"discarded"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewRunRecord assembles a record from a completed run.
func NewRunRecord(set assumption.Set, det valuation.DCFResult, sim *simulation.Result) RunRecord {
	return RunRecord{
		ID:            uuid.New().String(),
		Scenario:      set.Name,
		Assumptions:   set,
		Deterministic: det,
		Summary:       sim.Summary,
		Discarded:     sim.Discarded,
		CreatedAt:     time.Now().UTC(),
	}
}

// RunRepo handles the storage of valuation runs.
type RunRepo struct{}

// NewRunRepo creates a new repository instance.
func NewRunRepo() *RunRepo {
	return &RunRepo{}
}

// Schema assumption:
// CREATE TABLE IF NOT EXISTS valuation_runs (
//   id UUID PRIMARY KEY,
//   scenario TEXT,
//   run_json JSONB,
//   created_at TIMESTAMPTZ
// );

// Save persists one completed run.
func (r *RunRepo) Save(ctx context.Context, record RunRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	query := `
		INSERT INTO valuation_runs (id, scenario, run_json, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := pool.Exec(ctx, query, record.ID, record.Scenario, jsonData, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadLatest fetches the most recent run for a scenario name.
func (r *RunRepo) LoadLatest(ctx context.Context, scenario string) (*RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT run_json FROM valuation_runs
		WHERE scenario = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var jsonData []byte
	if err := pool.QueryRow(ctx, query, scenario).Scan(&jsonData); err != nil {
		return nil, fmt.Errorf("failed to load run for %s: %w", scenario, err)
	}

	var record RunRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
	}
	return &record, nil
}
