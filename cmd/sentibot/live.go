package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alejandrodnm/sentibot/internal/adapters/notify"
	"github.com/alejandrodnm/sentibot/internal/domain"
	"github.com/alejandrodnm/sentibot/internal/ports"
	"github.com/alejandrodnm/sentibot/internal/strategy"
)

// runLive executes trading iterations on a fixed cadence until the context is
// cancelled, a STOP file appears, or once is set. Every iteration is persisted
// and printed, including degraded and errored ones.
func runLive(
	ctx context.Context,
	engine *strategy.Engine,
	state domain.StrategyState,
	interval time.Duration,
	tradeLog ports.TradeLog,
	notifier *notify.Console,
	once bool,
) {
	stopFile := "STOP"
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("live trading started — press Ctrl+C or create STOP file to exit",
		"symbol", state.Symbol, "interval", interval)

	iterate := func() {
		next, record := engine.OnTradingIteration(ctx, state)
		state = next
		if err := tradeLog.SaveIteration(ctx, record); err != nil {
			slog.Error("failed to persist iteration", "err", err)
		}
		if err := notifier.NotifyIteration(ctx, record); err != nil {
			slog.Warn("failed to print iteration", "err", err)
		}
	}

	iterate()
	if once {
		return
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received — stopping live trading")
			return
		case <-ticker.C:
			if _, err := os.Stat(stopFile); err == nil {
				slog.Info("STOP file detected — shutting down live trading")
				os.Remove(stopFile)
				return
			}
			iterate()
		}
	}
}
