package strategy

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/sentibot/internal/domain"
	"github.com/alejandrodnm/sentibot/internal/ports"
)

// SignalThreshold is the minimum model probability for a signal to trade.
// Deliberately strict: with FinBERT-style models it fires only on very
// one-sided news batches. Tune with care — lowering it trades much more.
const SignalThreshold = 0.999

// Engine runs one trading iteration per scheduling tick: size the position,
// assess sentiment, apply the decision policy, and submit a bracket order
// when the signal is strong enough.
//
// Single-threaded by contract: the scheduler (live ticker or backtest
// driver) never overlaps iterations, so the engine holds no locks.
type Engine struct {
	broker ports.Broker
	sizer  *Sizer
	gate   *SentimentGate
	clock  ports.Clock
}

// NewEngine wires the engine with its collaborators.
func NewEngine(broker ports.Broker, news ports.NewsProvider, model ports.SentimentModel, clock ports.Clock) *Engine {
	return &Engine{
		broker: broker,
		sizer:  NewSizer(broker),
		gate:   NewSentimentGate(news, model),
		clock:  clock,
	}
}

// OnTradingIteration executes one tick of the strategy and returns the next
// state plus a record of what happened. The input state is never mutated:
// callers carry the returned state into the next tick.
//
// Errors during order construction or submission abort only the current
// iteration — LastTrade stays unchanged so the next tick can retry the same
// signal.
func (e *Engine) OnTradingIteration(ctx context.Context, state domain.StrategyState) (domain.StrategyState, domain.IterationRecord) {
	now := e.clock.Now()
	rec := domain.IterationRecord{At: now, Symbol: state.Symbol}

	sizing := e.sizer.Size(ctx, state.Symbol, state.CashAtRisk)
	rec.Sizing = sizing
	if sizing.Quantity <= 0 {
		slog.Warn("skipping iteration: no affordable quantity",
			"symbol", state.Symbol, "degraded", sizing.Degraded)
		rec.Outcome = domain.OutcomeSkipped
		rec.Reason = "quantity <= 0"
		return state, rec
	}

	sentiment := e.gate.Assess(ctx, state.Symbol, now)
	rec.Sentiment = sentiment

	if !sizing.Cash.GreaterThan(sizing.LastPrice) {
		rec.Outcome = domain.OutcomeHold
		rec.Reason = "cash <= last price"
		return state, rec
	}

	switch {
	case sentiment.Label == domain.LabelPositive && sentiment.Probability > SignalThreshold:
		return e.enter(ctx, state, rec, sizing, domain.SideBuy)
	case sentiment.Label == domain.LabelNegative && sentiment.Probability > SignalThreshold:
		return e.enter(ctx, state, rec, sizing, domain.SideSell)
	default:
		rec.Outcome = domain.OutcomeHold
		rec.Reason = "signal below threshold"
		return state, rec
	}
}

// enter closes an opposite position if one is open, then submits the bracket
// order and flips LastTrade. Any failure leaves the state untouched.
func (e *Engine) enter(ctx context.Context, state domain.StrategyState, rec domain.IterationRecord, sizing domain.SizingResult, side domain.Side) (domain.StrategyState, domain.IterationRecord) {
	opposite := domain.TradeSell
	if side == domain.SideSell {
		opposite = domain.TradeBuy
	}

	if state.LastTrade == opposite {
		if err := e.broker.LiquidateAll(ctx); err != nil {
			slog.Error("liquidation before reversal failed",
				"symbol", state.Symbol, "side", side, "err", err)
			rec.Outcome = domain.OutcomeError
			rec.Reason = "liquidate: " + err.Error()
			return state, rec
		}
		rec.Liquidated = true
	}

	spec, err := domain.BuildBracketOrder(state.Symbol, sizing.Quantity, side, sizing.LastPrice)
	if err != nil {
		slog.Error("order construction failed",
			"symbol", state.Symbol, "side", side, "qty", sizing.Quantity, "err", err)
		rec.Outcome = domain.OutcomeError
		rec.Reason = "build: " + err.Error()
		return state, rec
	}
	rec.Order = &spec

	handle, err := e.broker.SubmitOrder(ctx, spec)
	if err != nil {
		slog.Error("order submission failed",
			"symbol", state.Symbol, "side", side, "qty", spec.Quantity, "err", err)
		rec.Outcome = domain.OutcomeError
		rec.Reason = "submit: " + err.Error()
		return state, rec
	}
	rec.Handle = &handle

	slog.Info("order submitted",
		"symbol", state.Symbol,
		"side", side,
		"qty", spec.Quantity,
		"last_price", sizing.LastPrice,
		"take_profit", spec.TakeProfit,
		"stop_loss", spec.StopLoss,
		"order_id", handle.ID,
	)

	next := state
	if side == domain.SideBuy {
		next.LastTrade = domain.TradeBuy
		rec.Outcome = domain.OutcomeBuy
	} else {
		next.LastTrade = domain.TradeSell
		rec.Outcome = domain.OutcomeSell
	}
	return next, rec
}
