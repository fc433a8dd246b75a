package backtest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

// ErrNoBar is returned when the broker is queried before the driver has fed
// it the first bar.
var ErrNoBar = errors.New("backtest: no market data yet")

// ClosedTrade is one completed round trip in the simulation.
type ClosedTrade struct {
	Side     domain.Side
	Quantity int64
	Entry    decimal.Decimal
	Exit     decimal.Decimal
	OpenedAt time.Time
	ClosedAt time.Time
	PnL      decimal.Decimal
	ExitKind string // "take_profit" | "stop_loss" | "liquidate"
}

// openBracket tracks the exit legs of the currently open position.
type openBracket struct {
	side       domain.Side
	takeProfit decimal.Decimal
	stopLoss   decimal.Decimal
}

// SimBroker implements ports.Broker against replayed bars. Fills happen at
// the current bar's close; bracket exits are resolved against later bars'
// highs and lows. When a bar crosses both legs the stop loss wins — the
// conservative read of an unknowable intrabar path.
type SimBroker struct {
	cash decimal.Decimal

	qty      int64 // signed: >0 long, <0 short
	entry    decimal.Decimal
	openedAt time.Time
	bracket  *openBracket

	cur    Bar
	hasBar bool

	trades []ClosedTrade
}

// NewSimBroker creates a simulated account with the given starting cash.
func NewSimBroker(startCash decimal.Decimal) *SimBroker {
	return &SimBroker{cash: startCash}
}

// SetBar advances the simulation to the next bar. Open bracket legs are
// resolved against this bar before the engine gets to act on it.
func (b *SimBroker) SetBar(bar Bar) {
	b.cur = bar
	b.hasBar = true
	b.resolveBracket(bar)
}

// Cash returns current simulated cash.
func (b *SimBroker) Cash(_ context.Context) (decimal.Decimal, error) {
	return b.cash, nil
}

// LastPrice returns the current bar's close.
func (b *SimBroker) LastPrice(_ context.Context, _ string) (decimal.Decimal, error) {
	if !b.hasBar {
		return decimal.Zero, ErrNoBar
	}
	return b.cur.Close, nil
}

// SubmitOrder fills the entry leg immediately at the current close and arms
// the bracket exits.
func (b *SimBroker) SubmitOrder(_ context.Context, spec domain.OrderSpec) (domain.OrderHandle, error) {
	if !b.hasBar {
		return domain.OrderHandle{}, ErrNoBar
	}
	if spec.Quantity <= 0 {
		return domain.OrderHandle{}, fmt.Errorf("backtest: invalid quantity %d", spec.Quantity)
	}

	price := b.cur.Close
	cost := decimal.NewFromInt(spec.Quantity).Mul(price)

	switch spec.Side {
	case domain.SideBuy:
		if cost.GreaterThan(b.cash) {
			return domain.OrderHandle{}, fmt.Errorf("backtest: insufficient cash %s for %s", b.cash, cost)
		}
		b.cash = b.cash.Sub(cost)
		b.qty += spec.Quantity
	case domain.SideSell:
		// short entry: proceeds credited, buy-back owed later
		b.cash = b.cash.Add(cost)
		b.qty -= spec.Quantity
	default:
		return domain.OrderHandle{}, fmt.Errorf("backtest: unknown side %q", spec.Side)
	}

	b.entry = price
	b.openedAt = b.cur.Date
	b.bracket = &openBracket{side: spec.Side, takeProfit: spec.TakeProfit, stopLoss: spec.StopLoss}

	return domain.OrderHandle{ID: uuid.New().String()}, nil
}

// LiquidateAll closes the open position at the current close.
func (b *SimBroker) LiquidateAll(_ context.Context) error {
	if !b.hasBar {
		return ErrNoBar
	}
	b.closePosition(b.cur.Close, "liquidate")
	return nil
}

// Equity returns cash plus the mark-to-market value of the open position.
func (b *SimBroker) Equity() decimal.Decimal {
	if !b.hasBar || b.qty == 0 {
		return b.cash
	}
	return b.cash.Add(decimal.NewFromInt(b.qty).Mul(b.cur.Close))
}

// Trades returns the completed round trips so far.
func (b *SimBroker) Trades() []ClosedTrade {
	return b.trades
}

// resolveBracket checks the bar against the armed exit legs.
func (b *SimBroker) resolveBracket(bar Bar) {
	if b.bracket == nil || b.qty == 0 {
		return
	}

	br := b.bracket
	if b.qty > 0 {
		// long: stop below, target above
		if bar.Low.LessThanOrEqual(br.stopLoss) {
			b.closePosition(br.stopLoss, "stop_loss")
		} else if bar.High.GreaterThanOrEqual(br.takeProfit) {
			b.closePosition(br.takeProfit, "take_profit")
		}
		return
	}
	// short: stop above, target below
	if bar.High.GreaterThanOrEqual(br.stopLoss) {
		b.closePosition(br.stopLoss, "stop_loss")
	} else if bar.Low.LessThanOrEqual(br.takeProfit) {
		b.closePosition(br.takeProfit, "take_profit")
	}
}

// closePosition unwinds the whole position at the given price and records
// the round trip.
func (b *SimBroker) closePosition(price decimal.Decimal, kind string) {
	if b.qty == 0 {
		b.bracket = nil
		return
	}

	qty := b.qty
	value := decimal.NewFromInt(qty).Mul(price)
	b.cash = b.cash.Add(value) // negative qty debits the buy-back

	trade := ClosedTrade{
		Quantity: qty,
		Entry:    b.entry,
		Exit:     price,
		OpenedAt: b.openedAt,
		ClosedAt: b.cur.Date,
		ExitKind: kind,
	}
	if qty > 0 {
		trade.Side = domain.SideBuy
		trade.PnL = price.Sub(b.entry).Mul(decimal.NewFromInt(qty))
	} else {
		trade.Side = domain.SideSell
		trade.PnL = b.entry.Sub(price).Mul(decimal.NewFromInt(-qty))
	}
	b.trades = append(b.trades, trade)

	slog.Debug("position closed",
		"side", trade.Side, "qty", trade.Quantity,
		"entry", trade.Entry, "exit", trade.Exit,
		"pnl", trade.PnL, "kind", kind,
	)

	b.qty = 0
	b.bracket = nil
}
