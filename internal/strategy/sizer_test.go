package strategy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alejandrodnm/sentibot/internal/strategy"
)

func TestSizer_Formula(t *testing.T) {
	broker := &mockBroker{cash: decimal.NewFromInt(10000), price: decimal.NewFromInt(100)}
	sizer := strategy.NewSizer(broker)

	res := sizer.Size(context.Background(), "SPY", 0.5)

	assert.False(t, res.Degraded)
	assert.True(t, res.Cash.Equal(decimal.NewFromInt(10000)))
	assert.True(t, res.LastPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(50), res.Quantity)
}

func TestSizer_ZeroedOnPriceError(t *testing.T) {
	broker := &mockBroker{cash: decimal.NewFromInt(10000), priceErr: errors.New("no trade data")}
	sizer := strategy.NewSizer(broker)

	res := sizer.Size(context.Background(), "SPY", 0.5)

	assert.True(t, res.Degraded)
	assert.True(t, res.Cash.IsZero())
	assert.Equal(t, int64(0), res.Quantity)
}

func TestSizer_QuantityNeverExceedsBudget(t *testing.T) {
	// quantity * price <= cash * cashAtRisk within one share of rounding
	broker := &mockBroker{cash: decimal.NewFromFloat(5000), price: decimal.NewFromFloat(37.42)}
	sizer := strategy.NewSizer(broker)

	res := sizer.Size(context.Background(), "SPY", 0.25)

	budget := decimal.NewFromFloat(5000 * 0.25)
	spent := decimal.NewFromInt(res.Quantity).Mul(broker.price)
	assert.True(t, spent.Sub(budget).Abs().LessThanOrEqual(broker.price),
		"spent=%s budget=%s", spent, budget)
}
