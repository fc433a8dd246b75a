package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/sentibot/config"
	"github.com/alejandrodnm/sentibot/internal/adapters/alpaca"
	"github.com/alejandrodnm/sentibot/internal/adapters/finbert"
	"github.com/alejandrodnm/sentibot/internal/adapters/notify"
	"github.com/alejandrodnm/sentibot/internal/backtest"
	"github.com/alejandrodnm/sentibot/internal/domain"
	"github.com/alejandrodnm/sentibot/internal/ports"
)

type backtestOptions struct {
	from      string
	to        string
	startCash float64
	dryRun    bool
}

// runBacktest replays daily bars through the same decision engine used for
// live trading. In dry-run mode the news and sentiment collaborators are
// replaced with inert stand-ins so no credentials or services are needed.
func runBacktest(ctx context.Context, cfg *config.Config, state domain.StrategyState, notifier *notify.Console, opts backtestOptions) {
	from, err := time.Parse("2006-01-02", opts.from)
	if err != nil {
		slog.Error("invalid -from date", "err", err, "value", opts.from)
		os.Exit(1)
	}
	to, err := time.Parse("2006-01-02", opts.to)
	if err != nil {
		slog.Error("invalid -to date", "err", err, "value", opts.to)
		os.Exit(1)
	}
	if !to.After(from) {
		slog.Error("backtest range is empty", "from", opts.from, "to", opts.to)
		os.Exit(1)
	}

	var news ports.NewsProvider
	var model ports.SentimentModel
	if opts.dryRun {
		news = backtest.NoNews{}
		model = backtest.NeutralModel{}
	} else {
		client := alpaca.NewClient(
			cfg.Credentials.BaseURL,
			cfg.API.DataBase,
			cfg.Credentials.APIKey,
			cfg.Credentials.APISecret,
		)
		news = client
		model = finbert.NewClient(cfg.API.SentimentBase)
	}

	slog.Info("backtest starting",
		"symbol", state.Symbol,
		"from", opts.from,
		"to", opts.to,
		"start_cash", opts.startCash,
		"dry_run", opts.dryRun,
	)

	driver := backtest.NewDriver(
		backtest.NewYahooSource(),
		news,
		model,
		decimal.NewFromFloat(opts.startCash),
	)
	report, err := driver.Run(ctx, state, from, to)
	if err != nil {
		slog.Error("backtest failed", "err", err)
		os.Exit(1)
	}
	notifier.PrintBacktest(report)
}
