package domain

import "github.com/shopspring/decimal"

// Side is the direction of an entry order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderKindBracket is the only order kind the strategy emits: a market entry
// paired with a take-profit and a stop-loss exit.
const OrderKindBracket = "bracket"

// Bracket offsets as fixed fractions of the reference price.
// Long:  take profit at +20%, stop loss at -5%.
// Short: take profit at -20%, stop loss at +5%.
var (
	bracketTakeProfitPct = decimal.NewFromFloat(0.20)
	bracketStopLossPct   = decimal.NewFromFloat(0.05)
	one                  = decimal.NewFromInt(1)
)

// OrderSpec is a fully specified bracket order, ready for submission.
type OrderSpec struct {
	Symbol     string
	Quantity   int64
	Side       Side
	Kind       string
	LimitRef   decimal.Decimal // last price the brackets were derived from
	TakeProfit decimal.Decimal
	StopLoss   decimal.Decimal
}

// OrderHandle identifies a submitted order at the broker.
type OrderHandle struct {
	ID            string
	ClientOrderID string
}

// BuildBracketOrder derives a bracket order from the side, quantity, and last
// traded price. Pure function: no side effects, and the only failure modes
// are non-positive quantity or price.
func BuildBracketOrder(symbol string, quantity int64, side Side, lastPrice decimal.Decimal) (OrderSpec, error) {
	if quantity <= 0 {
		return OrderSpec{}, ErrNonPositiveQuantity
	}
	if lastPrice.Sign() <= 0 {
		return OrderSpec{}, ErrNonPositivePrice
	}

	spec := OrderSpec{
		Symbol:   symbol,
		Quantity: quantity,
		Side:     side,
		Kind:     OrderKindBracket,
		LimitRef: lastPrice,
	}
	switch side {
	case SideSell:
		spec.TakeProfit = lastPrice.Mul(one.Sub(bracketTakeProfitPct))
		spec.StopLoss = lastPrice.Mul(one.Add(bracketStopLossPct))
	default:
		spec.TakeProfit = lastPrice.Mul(one.Add(bracketTakeProfitPct))
		spec.StopLoss = lastPrice.Mul(one.Sub(bracketStopLossPct))
	}
	return spec, nil
}
