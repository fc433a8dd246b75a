package alpaca

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

// accountResponse is the subset of GET /v2/account we need.
type accountResponse struct {
	Cash string `json:"cash"`
}

// latestTradeResponse is the subset of GET /v2/stocks/{symbol}/trades/latest.
type latestTradeResponse struct {
	Trade struct {
		Price decimal.Decimal `json:"p"`
	} `json:"trade"`
}

// orderResponse is the subset of POST /v2/orders we care about.
type orderResponse struct {
	ID            string `json:"id"`
	ClientOrderID string `json:"client_order_id"`
	Status        string `json:"status"`
}

// orderRequest is the bracket order payload for POST /v2/orders.
type orderRequest struct {
	Symbol        string      `json:"symbol"`
	Qty           string      `json:"qty"`
	Side          string      `json:"side"`
	Type          string      `json:"type"`
	TimeInForce   string      `json:"time_in_force"`
	OrderClass    string      `json:"order_class"`
	ClientOrderID string      `json:"client_order_id"`
	TakeProfit    *takeProfit `json:"take_profit,omitempty"`
	StopLoss      *stopLoss   `json:"stop_loss,omitempty"`
}

type takeProfit struct {
	LimitPrice string `json:"limit_price"`
}

type stopLoss struct {
	StopPrice string `json:"stop_price"`
}

// Cash returns the account's available cash.
func (c *Client) Cash(ctx context.Context) (decimal.Decimal, error) {
	var acct accountResponse
	if err := get(ctx, c.trading, "Cash", "/v2/account", nil, &acct); err != nil {
		return decimal.Zero, err
	}
	cash, err := decimal.NewFromString(acct.Cash)
	if err != nil {
		return decimal.Zero, fmt.Errorf("alpaca.Cash: parse %q: %w", acct.Cash, err)
	}
	return cash, nil
}

// LastPrice returns the last traded price for the symbol from the data API.
func (c *Client) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var out latestTradeResponse
	path := fmt.Sprintf("/v2/stocks/%s/trades/latest", symbol)
	if err := get(ctx, c.data, "LastPrice", path, nil, &out); err != nil {
		return decimal.Zero, err
	}
	if out.Trade.Price.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("alpaca.LastPrice: no trade data for %s", symbol)
	}
	return out.Trade.Price, nil
}

// SubmitOrder places the bracket order: a market entry with attached
// take-profit limit and stop-loss legs. Exit prices are rounded to the cent —
// Alpaca rejects sub-penny bracket legs.
func (c *Client) SubmitOrder(ctx context.Context, spec domain.OrderSpec) (domain.OrderHandle, error) {
	clientOrderID := uuid.New().String()
	req := orderRequest{
		Symbol:        spec.Symbol,
		Qty:           fmt.Sprintf("%d", spec.Quantity),
		Side:          string(spec.Side),
		Type:          "market",
		TimeInForce:   "gtc",
		OrderClass:    spec.Kind,
		ClientOrderID: clientOrderID,
		TakeProfit:    &takeProfit{LimitPrice: spec.TakeProfit.Round(2).String()},
		StopLoss:      &stopLoss{StopPrice: spec.StopLoss.Round(2).String()},
	}

	var out orderResponse
	resp, err := c.trading.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v2/orders")
	if err != nil {
		return domain.OrderHandle{}, fmt.Errorf("alpaca.SubmitOrder: %w", err)
	}
	if resp.IsError() {
		return domain.OrderHandle{}, apiError("SubmitOrder", resp)
	}

	return domain.OrderHandle{ID: out.ID, ClientOrderID: out.ClientOrderID}, nil
}

// LiquidateAll closes every open position at market and cancels the orders
// attached to them.
func (c *Client) LiquidateAll(ctx context.Context) error {
	resp, err := c.trading.R().
		SetContext(ctx).
		SetQueryParam("cancel_orders", "true").
		Delete("/v2/positions")
	if err != nil {
		return fmt.Errorf("alpaca.LiquidateAll: %w", err)
	}
	// 207 means per-position results; individual failures surface on the
	// next iteration's sizing, so only reject hard errors here.
	if resp.IsError() {
		return apiError("LiquidateAll", resp)
	}
	return nil
}
