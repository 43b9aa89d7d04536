package simulation

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler yields one draw of a stochastic rate per call. gonum's
// distuv.Normal satisfies it directly; tests substitute fixed-sequence
// implementations without touching the simulation loop.
type Sampler interface {
	Rand() float64
}

// newSource builds the shared random source for a run. A non-nil seed makes
// the whole trial sequence bit-for-bit reproducible; otherwise the source is
// seeded from the clock.
func newSource(seed *uint64) rand.Source {
	if seed != nil {
		return rand.NewSource(*seed)
	}
	return rand.NewSource(uint64(time.Now().UnixNano()))
}

// normalSamplers returns the WACC and terminal-growth samplers for cfg,
// drawing sequentially from one shared source so that a seeded run replays
// identically.
func normalSamplers(cfg Config) (Sampler, Sampler) {
	src := newSource(cfg.Seed)
	wacc := distuv.Normal{Mu: cfg.WACCMean, Sigma: cfg.WACCStdev, Src: src}
	growth := distuv.Normal{Mu: cfg.GrowthMean, Sigma: cfg.GrowthStdev, Src: src}
	return wacc, growth
}
