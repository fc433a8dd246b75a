package domain

import "strings"

// TradeDirection is the direction of the last submitted entry order.
type TradeDirection string

const (
	TradeNone TradeDirection = "none"
	TradeBuy  TradeDirection = "buy"
	TradeSell TradeDirection = "sell"
)

// StrategyState is the entire persistent state of the strategy: the symbol it
// trades, the fraction of cash committed per entry, and the direction of the
// last trade. It is passed into each iteration and a new value is returned —
// the engine never mutates it in place, so a single iteration is a pure
// function of its inputs plus collaborator responses.
type StrategyState struct {
	Symbol     string
	CashAtRisk float64
	LastTrade  TradeDirection
}

// NewStrategyState validates the parameters and builds the initial state.
// cashAtRisk must lie in (0, 1].
func NewStrategyState(symbol string, cashAtRisk float64) (StrategyState, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return StrategyState{}, ErrEmptySymbol
	}
	if cashAtRisk <= 0 || cashAtRisk > 1 {
		return StrategyState{}, ErrCashAtRiskRange
	}
	return StrategyState{
		Symbol:     symbol,
		CashAtRisk: cashAtRisk,
		LastTrade:  TradeNone,
	}, nil
}
