package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alejandrodnm/sentibot/config"
	"github.com/alejandrodnm/sentibot/internal/adapters/alpaca"
	"github.com/alejandrodnm/sentibot/internal/adapters/finbert"
	"github.com/alejandrodnm/sentibot/internal/adapters/notify"
	"github.com/alejandrodnm/sentibot/internal/adapters/storage"
	"github.com/alejandrodnm/sentibot/internal/domain"
	"github.com/alejandrodnm/sentibot/internal/strategy"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one trading iteration and exit")
	backtest := flag.Bool("backtest", false, "replay historical bars instead of trading live")
	dryRun := flag.Bool("dry-run", false, "backtest without live news/sentiment collaborators")
	history := flag.Bool("history", false, "print the stored iteration log and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	from := flag.String("from", "2020-01-01", "backtest start date (YYYY-MM-DD)")
	to := flag.String("to", "2023-12-31", "backtest end date (YYYY-MM-DD)")
	startCash := flag.Float64("cash", 10000, "backtest starting cash")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// fatal by design: credentials and parameters are checked up front
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	logFile, err := setupLogger(cfg.Log)
	if err != nil {
		slog.Error("failed to open log file", "err", err, "path", cfg.Log.File)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	slog.Info("sentibot starting",
		"config", *configPath,
		"symbol", cfg.Strategy.Symbol,
		"cash_at_risk", cfg.Strategy.CashAtRisk,
		"interval", cfg.Interval(),
		"backtest", *backtest,
		"once", *once,
	)

	state, err := domain.NewStrategyState(cfg.Strategy.Symbol, cfg.Strategy.CashAtRisk)
	if err != nil {
		slog.Error("invalid strategy parameters", "err", err)
		os.Exit(1)
	}

	notifier := notify.NewConsole()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *backtest {
		runBacktest(ctx, cfg, state, notifier, backtestOptions{
			from:      *from,
			to:        *to,
			startCash: *startCash,
			dryRun:    *dryRun,
		})
		return
	}

	tradeLog, err := storage.NewSQLiteTradeLog(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open trade log", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer tradeLog.Close()

	if *history {
		printHistory(ctx, tradeLog, notifier)
		return
	}

	broker := alpaca.NewClient(
		cfg.Credentials.BaseURL,
		cfg.API.DataBase,
		cfg.Credentials.APIKey,
		cfg.Credentials.APISecret,
	)
	model := finbert.NewClient(cfg.API.SentimentBase)
	engine := strategy.NewEngine(broker, broker, model, wallClock{})

	runLive(ctx, engine, state, cfg.Interval(), tradeLog, notifier, *once)
	slog.Info("sentibot stopped cleanly")
}

func printHistory(ctx context.Context, tradeLog *storage.SQLiteTradeLog, notifier *notify.Console) {
	records, err := tradeLog.History(ctx, time.Time{}, time.Now().UTC())
	if err != nil {
		slog.Error("failed to read history", "err", err)
		os.Exit(1)
	}
	notifier.PrintHistory(records)
}

// wallClock is the live time source.
type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// setupLogger configures the default slog handler. With a log file set the
// output goes to both stdout and the append-only file.
func setupLogger(cfg config.LogConfig) (*os.File, error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	var file *os.File
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
	return file, nil
}
