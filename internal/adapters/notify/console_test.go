package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/sentibot/internal/adapters/notify"
	"github.com/alejandrodnm/sentibot/internal/backtest"
	"github.com/alejandrodnm/sentibot/internal/domain"
)

func buyRecord(t *testing.T) domain.IterationRecord {
	t.Helper()
	order, err := domain.BuildBracketOrder("SPY", 50, domain.SideBuy, decimal.NewFromInt(100))
	require.NoError(t, err)
	return domain.IterationRecord{
		At:      time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC),
		Symbol:  "SPY",
		Outcome: domain.OutcomeBuy,
		Sizing: domain.SizingResult{
			Cash:      decimal.NewFromInt(10000),
			LastPrice: decimal.NewFromInt(100),
			Quantity:  50,
		},
		Sentiment: domain.SentimentResult{Probability: 0.9995, Label: domain.LabelPositive},
		Order:     &order,
		Handle:    &domain.OrderHandle{ID: "ord-1"},
	}
}

func TestNotifyIteration_Buy(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf)

	require.NoError(t, n.NotifyIteration(context.Background(), buyRecord(t)))

	out := buf.String()
	assert.Contains(t, out, "SPY buy")
	assert.Contains(t, out, "qty=50")
	assert.Contains(t, out, "TP=120")
	assert.Contains(t, out, "SL=95")
}

func TestNotifyIteration_Hold(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf)

	rec := buyRecord(t)
	rec.Outcome = domain.OutcomeHold
	rec.Order = nil
	rec.Handle = nil
	rec.Sentiment = domain.NeutralSentiment()

	require.NoError(t, n.NotifyIteration(context.Background(), rec))

	out := buf.String()
	assert.Contains(t, out, "hold")
	assert.Contains(t, out, "neutral")
}

func TestPrintBacktest_WithTrades(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf)

	report := backtest.Report{
		Symbol:      "SPY",
		From:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		StartCash:   decimal.NewFromInt(10000),
		FinalEquity: decimal.NewFromInt(11000),
		ReturnPct:   10,
		Iterations:  1006,
		Orders:      3,
		Wins:        2,
		Losses:      1,
		Trades: []backtest.ClosedTrade{
			{
				Side: domain.SideBuy, Quantity: 50,
				Entry: decimal.NewFromInt(100), Exit: decimal.NewFromInt(120),
				OpenedAt: time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC),
				ClosedAt: time.Date(2020, 4, 14, 0, 0, 0, 0, time.UTC),
				PnL:      decimal.NewFromInt(1000), ExitKind: "take_profit",
			},
		},
	}

	n.PrintBacktest(report)

	out := buf.String()
	assert.Contains(t, out, "BACKTEST SPY")
	assert.Contains(t, out, "take_profit")
	assert.Contains(t, out, "+10.00%")
	assert.Contains(t, out, "W:2 L:1")
}

func TestPrintBacktest_NoTrades(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf)

	n.PrintBacktest(backtest.Report{
		Symbol:      "SPY",
		StartCash:   decimal.NewFromInt(10000),
		FinalEquity: decimal.NewFromInt(10000),
	})

	assert.Contains(t, buf.String(), "no trades")
}
