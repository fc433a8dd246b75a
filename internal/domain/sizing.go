package domain

import "github.com/shopspring/decimal"

// SizingResult is the affordable position size for one iteration. It is
// recomputed fresh every tick and never persisted.
//
// Degraded marks the zeroed result produced when a broker lookup failed, so
// callers can tell "nothing to trade" apart from "lookup error suppressed".
// Either way the caller's policy is the same: skip the iteration.
type SizingResult struct {
	Cash      decimal.Decimal
	LastPrice decimal.Decimal
	Quantity  int64
	Degraded  bool
}

// ZeroSizing is the safe result reported when cash or price lookups fail.
func ZeroSizing() SizingResult {
	return SizingResult{Degraded: true}
}

// ComputeQuantity returns the whole-share quantity affordable with
// cash * cashAtRisk at lastPrice, rounded to the nearest unit. No fractional
// shares. Returns 0 when lastPrice is not positive.
func ComputeQuantity(cash, lastPrice decimal.Decimal, cashAtRisk float64) int64 {
	if lastPrice.Sign() <= 0 {
		return 0
	}
	budget := cash.Mul(decimal.NewFromFloat(cashAtRisk))
	qty := budget.Div(lastPrice).Round(0).IntPart()
	if qty < 0 {
		return 0
	}
	return qty
}
