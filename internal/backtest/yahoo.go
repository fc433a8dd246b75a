package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// YahooSource fetches historical daily bars from Yahoo Finance.
type YahooSource struct{}

// NewYahooSource creates the source. Stateless; Yahoo needs no credentials
// for historical charts.
func NewYahooSource() *YahooSource {
	return &YahooSource{}
}

// DailyBars returns the daily candles for [from, to].
func (y *YahooSource) DailyBars(_ context.Context, symbol string, from, to time.Time) ([]Bar, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var bars []Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, Bar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("backtest.DailyBars: yahoo chart %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("backtest.DailyBars: no bars for %s in %s..%s",
			symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return bars, nil
}
