package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

// TradeLog persists the outcome of each trading iteration. Observability
// only: the decision engine never reads the log back — its only persistent
// state is the in-memory last-trade flag.
type TradeLog interface {
	// SaveIteration appends one iteration record.
	SaveIteration(ctx context.Context, rec domain.IterationRecord) error

	// History returns the records in the given time range.
	History(ctx context.Context, from, to time.Time) ([]domain.IterationRecord, error)

	// Close closes the underlying database cleanly.
	Close() error
}
