package domain

import "time"

// IterationOutcome classifies what a single trading iteration did.
type IterationOutcome string

const (
	// OutcomeSkipped: sizing produced no affordable quantity, nothing ran.
	OutcomeSkipped IterationOutcome = "skipped"
	// OutcomeHold: signal below threshold or unaffordable, no order.
	OutcomeHold IterationOutcome = "hold"
	// OutcomeBuy / OutcomeSell: a bracket order was submitted.
	OutcomeBuy  IterationOutcome = "buy"
	OutcomeSell IterationOutcome = "sell"
	// OutcomeError: order construction or submission failed; state unchanged,
	// the next tick retries the same signal.
	OutcomeError IterationOutcome = "error"
)

// IterationRecord is everything one tick of the decision engine produced.
// Consumed by the trade log and the console notifier; the engine itself never
// reads records back.
type IterationRecord struct {
	At        time.Time
	Symbol    string
	Outcome   IterationOutcome
	Sizing    SizingResult
	Sentiment SentimentResult
	Order     *OrderSpec   // nil unless an order was submitted
	Handle    *OrderHandle // nil unless an order was accepted
	Liquidated bool        // a reversal closed the prior position first
	Reason    string       // short human-readable note (skip/hold/error cause)
}
