package ports

import (
	"context"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

// Notifier presents iteration outcomes to the user. The console
// implementation prints a one-line summary per tick and a formatted table
// for backtest reports.
type Notifier interface {
	NotifyIteration(ctx context.Context, rec domain.IterationRecord) error
}
