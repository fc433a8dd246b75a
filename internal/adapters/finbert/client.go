// Package finbert is the HTTP client for the FinBERT sentiment-scoring
// service: a small sidecar that wraps the model and scores a batch of
// headlines into one aggregate (probability, label) pair.
package finbert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

const (
	requestTimeout = 30 * time.Second // model inference can be slow on cold start
	maxRetries     = 2
)

// Client implements ports.SentimentModel against the scoring service.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetRetryCount(maxRetries)
	c.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= 500
	})
	return &Client{http: c}
}

type estimateRequest struct {
	Headlines []string `json:"headlines"`
}

type estimateResponse struct {
	Probability float64 `json:"probability"`
	Sentiment   string  `json:"sentiment"`
}

// Estimate scores the whole batch of headlines. The service returns one
// aggregate result, not per-headline scores.
func (c *Client) Estimate(ctx context.Context, headlines []string) (domain.SentimentResult, error) {
	var out estimateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(estimateRequest{Headlines: headlines}).
		SetResult(&out).
		Post("/sentiment")
	if err != nil {
		return domain.SentimentResult{}, fmt.Errorf("finbert.Estimate: %w", err)
	}
	if resp.IsError() {
		return domain.SentimentResult{}, fmt.Errorf("finbert.Estimate: %s: %s", resp.Status(), resp.String())
	}
	if out.Probability < 0 || out.Probability > 1 {
		return domain.SentimentResult{}, fmt.Errorf("finbert.Estimate: probability %v out of range", out.Probability)
	}

	return domain.SentimentResult{
		Probability: out.Probability,
		Label:       domain.ParseLabel(out.Sentiment),
	}, nil
}
