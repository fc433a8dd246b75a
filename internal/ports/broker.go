package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

// Broker is the market-data and order-execution collaborator. The live
// implementation talks to Alpaca; the backtest driver substitutes a simulated
// broker behind the same interface.
type Broker interface {
	// Cash returns the available trading cash in the account.
	Cash(ctx context.Context) (decimal.Decimal, error)

	// LastPrice returns the last traded price for the symbol.
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// SubmitOrder places a bracket order and returns its handle.
	SubmitOrder(ctx context.Context, spec domain.OrderSpec) (domain.OrderHandle, error)

	// LiquidateAll closes out every open position in the account. Used
	// before reversing direction so opposite brackets never stack on top
	// of a still-open position.
	LiquidateAll(ctx context.Context) error
}
