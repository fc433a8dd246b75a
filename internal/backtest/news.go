package backtest

import (
	"context"
	"time"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

// NewsItem is one recorded headline with its publication time.
type NewsItem struct {
	PublishedAt time.Time
	Headline    string
}

// FixtureNews replays recorded headlines, returning the ones that fall into
// the requested window in recorded order. Lets a backtest rerun the exact
// news stream of an earlier live run.
type FixtureNews struct {
	Items []NewsItem
}

// Headlines implements ports.NewsProvider.
func (f *FixtureNews) Headlines(_ context.Context, _ string, from, to time.Time) ([]string, error) {
	var out []string
	for _, item := range f.Items {
		if item.PublishedAt.Before(from) || item.PublishedAt.After(to) {
			continue
		}
		out = append(out, item.Headline)
	}
	return out, nil
}

// NoNews is the offline news source: always an empty window, so the
// sentiment gate reports the neutral default and the backtest exercises only
// sizing and state transitions.
type NoNews struct{}

// Headlines implements ports.NewsProvider.
func (NoNews) Headlines(_ context.Context, _ string, _, _ time.Time) ([]string, error) {
	return nil, nil
}

// NeutralModel scores every batch as neutral. Paired with NoNews it is never
// reached, but keeps the engine wiring total in offline runs.
type NeutralModel struct{}

// Estimate implements ports.SentimentModel.
func (NeutralModel) Estimate(_ context.Context, _ []string) (domain.SentimentResult, error) {
	return domain.NeutralSentiment(), nil
}
