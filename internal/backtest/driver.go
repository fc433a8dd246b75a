package backtest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/sentibot/internal/domain"
	"github.com/alejandrodnm/sentibot/internal/ports"
	"github.com/alejandrodnm/sentibot/internal/strategy"
)

// Report is everything one backtest run produced.
type Report struct {
	Symbol      string
	From, To    time.Time
	StartCash   decimal.Decimal
	FinalEquity decimal.Decimal
	ReturnPct   float64
	MaxDrawdown float64 // fraction of peak equity, 0.25 = -25%

	Iterations int
	Orders     int
	Wins       int
	Losses     int

	Trades  []ClosedTrade
	Records []domain.IterationRecord
}

// Driver replays historical daily bars through the same
// Engine.OnTradingIteration entry point the live loop uses, with a simulated
// clock and broker substituted behind the engine's ports.
type Driver struct {
	bars      BarSource
	news      ports.NewsProvider
	model     ports.SentimentModel
	startCash decimal.Decimal
}

// NewDriver wires a backtest over the given collaborators.
func NewDriver(bars BarSource, news ports.NewsProvider, model ports.SentimentModel, startCash decimal.Decimal) *Driver {
	return &Driver{bars: bars, news: news, model: model, startCash: startCash}
}

// Run replays [from, to] and returns the report. One engine iteration runs
// per bar, at that bar's close.
func (d *Driver) Run(ctx context.Context, state domain.StrategyState, from, to time.Time) (Report, error) {
	bars, err := d.bars.DailyBars(ctx, state.Symbol, from, to)
	if err != nil {
		return Report{}, fmt.Errorf("backtest.Run: %w", err)
	}

	slog.Info("backtest starting",
		"symbol", state.Symbol,
		"bars", len(bars),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"start_cash", d.startCash,
	)

	clock := NewSimClock(from)
	broker := NewSimBroker(d.startCash)
	engine := strategy.NewEngine(broker, d.news, d.model, clock)

	report := Report{
		Symbol:    state.Symbol,
		From:      from,
		To:        to,
		StartCash: d.startCash,
	}

	peak := d.startCash
	for _, bar := range bars {
		if err := ctx.Err(); err != nil {
			return Report{}, fmt.Errorf("backtest.Run: %w", err)
		}

		broker.SetBar(bar)
		clock.Set(bar.Date)

		var rec domain.IterationRecord
		state, rec = engine.OnTradingIteration(ctx, state)
		report.Records = append(report.Records, rec)
		report.Iterations++
		if rec.Order != nil && rec.Handle != nil {
			report.Orders++
		}

		equity := broker.Equity()
		if equity.GreaterThan(peak) {
			peak = equity
		} else if peak.Sign() > 0 {
			dd, _ := peak.Sub(equity).Div(peak).Float64()
			if dd > report.MaxDrawdown {
				report.MaxDrawdown = dd
			}
		}
	}

	report.FinalEquity = broker.Equity()
	report.Trades = broker.Trades()
	for _, tr := range report.Trades {
		if tr.PnL.Sign() > 0 {
			report.Wins++
		} else {
			report.Losses++
		}
	}
	if d.startCash.Sign() > 0 {
		ret, _ := report.FinalEquity.Sub(d.startCash).Div(d.startCash).Float64()
		report.ReturnPct = ret * 100
	}

	slog.Info("backtest complete",
		"iterations", report.Iterations,
		"orders", report.Orders,
		"trades", len(report.Trades),
		"final_equity", report.FinalEquity,
		"return_pct", fmt.Sprintf("%.2f", report.ReturnPct),
	)
	return report, nil
}
