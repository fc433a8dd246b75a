package strategy

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/sentibot/internal/domain"
	"github.com/alejandrodnm/sentibot/internal/ports"
)

// Sizer computes the affordable share quantity for one iteration from the
// broker's current cash and last price.
type Sizer struct {
	broker ports.Broker
}

// NewSizer creates a Sizer backed by the given broker.
func NewSizer(broker ports.Broker) *Sizer {
	return &Sizer{broker: broker}
}

// Size returns the sizing result for the symbol. Broker failures are never
// propagated: the caller's policy is "treat as nothing to trade", so any
// lookup error yields the zeroed degraded result.
func (s *Sizer) Size(ctx context.Context, symbol string, cashAtRisk float64) domain.SizingResult {
	cash, err := s.broker.Cash(ctx)
	if err != nil {
		slog.Warn("position sizing: cash lookup failed", "symbol", symbol, "err", err)
		return domain.ZeroSizing()
	}

	lastPrice, err := s.broker.LastPrice(ctx, symbol)
	if err != nil {
		slog.Warn("position sizing: price lookup failed", "symbol", symbol, "err", err)
		return domain.ZeroSizing()
	}

	return domain.SizingResult{
		Cash:      cash,
		LastPrice: lastPrice,
		Quantity:  domain.ComputeQuantity(cash, lastPrice, cashAtRisk),
	}
}
