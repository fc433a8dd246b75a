package ports

import (
	"context"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

// SentimentModel scores a batch of headlines and returns one aggregate
// (probability, label) pair for the whole batch, not per headline.
type SentimentModel interface {
	Estimate(ctx context.Context, headlines []string) (domain.SentimentResult, error)
}
