package alpaca

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	defaultDataBase = "https://data.alpaca.markets"

	// Alpaca allows 200 requests/min per account; pace well under that so
	// a burst of sizing + news calls never trips the limit.
	requestsPerSec = 3
	requestBurst   = 5

	requestTimeout = 10 * time.Second
	maxRetries     = 3
	retryWait      = 500 * time.Millisecond
)

// Client talks to the Alpaca trading and market-data APIs. It implements
// ports.Broker and ports.NewsProvider.
type Client struct {
	trading *resty.Client
	data    *resty.Client
	limiter *rate.Limiter
}

// NewClient builds a Client for the given trading base URL (paper or live)
// and credentials. dataBase falls back to the production data API when empty.
func NewClient(tradingBase, dataBase, key, secret string) *Client {
	if dataBase == "" {
		dataBase = defaultDataBase
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSec), requestBurst)

	newAPI := func(base string) *resty.Client {
		c := resty.New().
			SetBaseURL(base).
			SetTimeout(requestTimeout).
			SetRetryCount(maxRetries).
			SetRetryWaitTime(retryWait).
			SetHeader("APCA-API-KEY-ID", key).
			SetHeader("APCA-API-SECRET-KEY", secret)
		c.AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})
		c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
		return c
	}

	return &Client{
		trading: newAPI(tradingBase),
		data:    newAPI(dataBase),
		limiter: limiter,
	}
}

// apiError turns a non-2xx Alpaca response into an error with the body
// message included.
func apiError(op string, resp *resty.Response) error {
	return fmt.Errorf("alpaca.%s: %s: %s", op, resp.Status(), resp.String())
}

// get performs a GET against the given client, decoding JSON into out.
func get(ctx context.Context, c *resty.Client, op, path string, query map[string]string, out any) error {
	resp, err := c.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("alpaca.%s: %w", op, err)
	}
	if resp.IsError() {
		return apiError(op, resp)
	}
	return nil
}
