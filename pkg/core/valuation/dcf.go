// Package valuation implements the deterministic half of the engine:
// discounting a projected free-cash-flow series plus a Gordon-growth terminal
// value into enterprise value, equity value, and fair value per share.
package valuation

import "fmt"

// DCFInput encapsulates all inputs required for one deterministic valuation.
// Series carries the explicit-period cash flows in time order (period 1 first);
// FinalFCF is the last projected value, the seed for the terminal value.
type DCFInput struct {
	Series            []float64 `json:"series"`
	FinalFCF          float64   `json:"final_fcf"`
	DiscountRate      float64   `json:"discount_rate"`   // WACC, e.g. 0.09
	TerminalGrowth    float64   `json:"terminal_growth"` // e.g. 0.025
	NetDebt           float64   `json:"net_debt"`        // negative = net cash
	SharesOutstanding float64   `json:"shares_outstanding"`
}

// DCFResult holds the valuation outputs. Immutable once produced.
type DCFResult struct {
	EnterpriseValue   float64 `json:"enterprise_value"`
	EquityValue       float64 `json:"equity_value"`
	FairValuePerShare float64 `json:"fair_value_per_share"`
	PVExplicit        float64 `json:"pv_explicit"`
	PVTerminal        float64 `json:"pv_terminal"`
	TerminalValue     float64 `json:"terminal_value"` // undiscounted, as of year T
}

// Evaluate performs one deterministic DCF pass.
//
// Preconditions, checked here on every call because the Monte Carlo path
// re-enters with freshly sampled rates: DiscountRate > TerminalGrowth
// (strict; equality diverges), DiscountRate > -1, SharesOutstanding > 0,
// non-empty series.
func Evaluate(input DCFInput) (DCFResult, error) {
	if len(input.Series) == 0 {
		return DCFResult{}, fmt.Errorf("%w: cash flow series is empty", ErrInvalidInput)
	}
	if input.SharesOutstanding <= 0 {
		return DCFResult{}, fmt.Errorf("%w: shares outstanding must be positive, got %v", ErrInvalidInput, input.SharesOutstanding)
	}
	if input.DiscountRate <= -1 {
		return DCFResult{}, fmt.Errorf("%w: discount rate must exceed -100%%, got %v", ErrInvalidInput, input.DiscountRate)
	}
	if input.DiscountRate <= input.TerminalGrowth {
		return DCFResult{}, fmt.Errorf("%w: discount rate %v must exceed terminal growth %v",
			ErrInvalidInput, input.DiscountRate, input.TerminalGrowth)
	}

	// 1. Discount explicit flows, tracking the cumulative discount factor so
	// the terminal value reuses the year-T factor.
	var pvExplicit float64
	cumDiscount := 1.0
	for _, fcf := range input.Series {
		cumDiscount /= 1 + input.DiscountRate
		pvExplicit += fcf * cumDiscount
	}

	// 2. Terminal value (Gordon Growth): TV_T = FCF_{T+1} / (r - g)
	tv := input.FinalFCF * (1 + input.TerminalGrowth) / (input.DiscountRate - input.TerminalGrowth)
	pvTerminal := tv * cumDiscount

	// 3. Aggregation
	ev := pvExplicit + pvTerminal
	equity := ev - input.NetDebt
	perShare := equity / input.SharesOutstanding

	return DCFResult{
		EnterpriseValue:   ev,
		EquityValue:       equity,
		FairValuePerShare: perShare,
		PVExplicit:        pvExplicit,
		PVTerminal:        pvTerminal,
		TerminalValue:     tv,
	}, nil
}
