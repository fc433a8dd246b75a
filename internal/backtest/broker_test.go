package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC)
}

func bar(d int, open, high, low, close float64) Bar {
	return Bar{
		Date:  day(d),
		Open:  decimal.NewFromFloat(open),
		High:  decimal.NewFromFloat(high),
		Low:   decimal.NewFromFloat(low),
		Close: decimal.NewFromFloat(close),
	}
}

func mustBuy(t *testing.T, b *SimBroker, qty int64, price float64) {
	t.Helper()
	spec, err := domain.BuildBracketOrder("SPY", qty, domain.SideBuy, decimal.NewFromFloat(price))
	require.NoError(t, err)
	_, err = b.SubmitOrder(context.Background(), spec)
	require.NoError(t, err)
}

func TestSimBroker_NoBarYet(t *testing.T) {
	b := NewSimBroker(decimal.NewFromInt(10000))

	_, err := b.LastPrice(context.Background(), "SPY")
	assert.ErrorIs(t, err, ErrNoBar)

	err = b.LiquidateAll(context.Background())
	assert.ErrorIs(t, err, ErrNoBar)
}

func TestSimBroker_BuyFillAtClose(t *testing.T) {
	b := NewSimBroker(decimal.NewFromInt(10000))
	b.SetBar(bar(1, 99, 101, 98, 100))

	mustBuy(t, b, 50, 100)

	cash, err := b.Cash(context.Background())
	require.NoError(t, err)
	assert.True(t, cash.Equal(decimal.NewFromInt(5000)), "cash=%s", cash)
	// no money created: equity == starting cash right after the fill
	assert.True(t, b.Equity().Equal(decimal.NewFromInt(10000)), "equity=%s", b.Equity())
}

func TestSimBroker_TakeProfitHit(t *testing.T) {
	b := NewSimBroker(decimal.NewFromInt(10000))
	b.SetBar(bar(1, 99, 101, 98, 100))
	mustBuy(t, b, 50, 100) // TP 120, SL 95

	b.SetBar(bar(2, 110, 125, 108, 122))

	trades := b.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "take_profit", trades[0].ExitKind)
	assert.True(t, trades[0].Exit.Equal(decimal.NewFromInt(120)))
	assert.True(t, trades[0].PnL.Equal(decimal.NewFromInt(1000)), "pnl=%s", trades[0].PnL)
	// cash = 5000 + 50*120
	cash, _ := b.Cash(context.Background())
	assert.True(t, cash.Equal(decimal.NewFromInt(11000)), "cash=%s", cash)
}

func TestSimBroker_StopLossWinsWhenBarCrossesBoth(t *testing.T) {
	b := NewSimBroker(decimal.NewFromInt(10000))
	b.SetBar(bar(1, 99, 101, 98, 100))
	mustBuy(t, b, 50, 100) // TP 120, SL 95

	// one wild bar spanning both legs
	b.SetBar(bar(2, 100, 130, 90, 110))

	trades := b.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "stop_loss", trades[0].ExitKind)
	assert.True(t, trades[0].Exit.Equal(decimal.NewFromInt(95)))
}

func TestSimBroker_ShortBracket(t *testing.T) {
	b := NewSimBroker(decimal.NewFromInt(10000))
	b.SetBar(bar(1, 99, 101, 98, 100))

	spec, err := domain.BuildBracketOrder("SPY", 50, domain.SideSell, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = b.SubmitOrder(context.Background(), spec)
	require.NoError(t, err)

	// short proceeds credited
	cash, _ := b.Cash(context.Background())
	assert.True(t, cash.Equal(decimal.NewFromInt(15000)), "cash=%s", cash)

	// drop to the short take profit at 80
	b.SetBar(bar(2, 90, 92, 78, 79))

	trades := b.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, domain.SideSell, trades[0].Side)
	assert.Equal(t, "take_profit", trades[0].ExitKind)
	// pnl = (100 - 80) * 50
	assert.True(t, trades[0].PnL.Equal(decimal.NewFromInt(1000)), "pnl=%s", trades[0].PnL)
	cash, _ = b.Cash(context.Background())
	assert.True(t, cash.Equal(decimal.NewFromInt(11000)), "cash=%s", cash)
}

func TestSimBroker_LiquidateAll(t *testing.T) {
	b := NewSimBroker(decimal.NewFromInt(10000))
	b.SetBar(bar(1, 99, 101, 98, 100))
	mustBuy(t, b, 50, 100)

	b.SetBar(bar(2, 104, 106, 103, 105))
	require.NoError(t, b.LiquidateAll(context.Background()))

	trades := b.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "liquidate", trades[0].ExitKind)
	assert.True(t, trades[0].Exit.Equal(decimal.NewFromInt(105)))

	cash, _ := b.Cash(context.Background())
	assert.True(t, cash.Equal(decimal.NewFromInt(10250)), "cash=%s", cash)
	assert.True(t, b.Equity().Equal(cash), "flat book: equity == cash")
}

func TestSimBroker_InsufficientCash(t *testing.T) {
	b := NewSimBroker(decimal.NewFromInt(100))
	b.SetBar(bar(1, 99, 101, 98, 100))

	spec, err := domain.BuildBracketOrder("SPY", 50, domain.SideBuy, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = b.SubmitOrder(context.Background(), spec)
	assert.Error(t, err)
	assert.Empty(t, b.Trades())
}
