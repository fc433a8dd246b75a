package strategy

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/sentibot/internal/domain"
	"github.com/alejandrodnm/sentibot/internal/ports"
)

// newsLookbackDays is the length of the headline window ending at the
// iteration time.
const newsLookbackDays = 3

// SentimentGate turns recent headlines into a single (probability, label)
// signal for the decision engine.
type SentimentGate struct {
	news  ports.NewsProvider
	model ports.SentimentModel
}

// NewSentimentGate creates a gate over the given news source and scoring
// model.
func NewSentimentGate(news ports.NewsProvider, model ports.SentimentModel) *SentimentGate {
	return &SentimentGate{news: news, model: model}
}

// Assess fetches headlines for [asOf - 3d, asOf] and scores the whole batch.
// Any failure in fetching or scoring is recovered locally into the neutral
// default — a gate failure must never abort the iteration.
func (g *SentimentGate) Assess(ctx context.Context, symbol string, asOf time.Time) domain.SentimentResult {
	from := asOf.AddDate(0, 0, -newsLookbackDays)

	headlines, err := g.news.Headlines(ctx, symbol, from, asOf)
	if err != nil {
		slog.Warn("sentiment gate: news fetch failed", "symbol", symbol, "err", err)
		return domain.DegradedSentiment()
	}
	if len(headlines) == 0 {
		slog.Debug("sentiment gate: no headlines in window", "symbol", symbol,
			"from", from.Format("2006-01-02"), "to", asOf.Format("2006-01-02"))
		return domain.NeutralSentiment()
	}

	result, err := g.model.Estimate(ctx, headlines)
	if err != nil {
		slog.Warn("sentiment gate: scoring failed", "symbol", symbol,
			"headlines", len(headlines), "err", err)
		return domain.DegradedSentiment()
	}

	slog.Info("sentiment",
		"symbol", symbol,
		"label", result.Label,
		"probability", result.Probability,
		"headlines", len(headlines),
	)
	return result
}
