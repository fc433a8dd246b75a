package backtest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one daily OHLC candle.
type Bar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// BarSource supplies historical daily bars for the backtest driver.
type BarSource interface {
	DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]Bar, error)
}
