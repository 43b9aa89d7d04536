package valuation

import "errors"

// Error kinds shared across the valuation core. Callers discriminate with
// errors.Is; detail text is attached at the point of failure via fmt.Errorf("%w: ...").
var (
	// ErrInvalidInput covers malformed or out-of-domain static parameters:
	// non-positive FCF, empty growth stages, non-positive shares outstanding,
	// or a base-case discount rate at or below the terminal growth rate.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSampledParameter marks a Monte Carlo trial whose sampled rate pair
	// violates the discounting precondition. It is handled by the simulation's
	// resample/discard policy and never escapes a simulation run.
	ErrSampledParameter = errors.New("sampled parameter violation")

	// ErrDegenerateDistribution marks a summary statistic that is undefined
	// for the realized distribution (risk ratio with a zero mean).
	ErrDegenerateDistribution = errors.New("degenerate distribution")
)
