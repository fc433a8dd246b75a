package ports

import (
	"context"
	"time"
)

// NewsProvider fetches headlines for a symbol over a date window.
type NewsProvider interface {
	// Headlines returns the raw headline text of every news item published
	// in [from, to], in the order the provider returned them — the
	// sentiment model scores the batch as a whole and ordering matters.
	Headlines(ctx context.Context, symbol string, from, to time.Time) ([]string, error)
}
