package domain

import "strings"

// Label is the categorical summary of aggregated news tone.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// ParseLabel normalizes a label string from the scoring model. Anything
// unrecognized maps to neutral.
func ParseLabel(s string) Label {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return LabelPositive
	case "negative":
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// SentimentResult is the aggregate score for a whole batch of headlines.
//
// Degraded marks the neutral default substituted when fetching or scoring
// failed — a "do nothing" signal rather than a propagated error.
type SentimentResult struct {
	Probability float64
	Label       Label
	Degraded    bool
}

// NeutralSentiment is the safe no-signal result: probability 0.5, neutral
// label. Used both when there is no news in the window (not degraded) and,
// with Degraded set by the caller, when a collaborator failed.
func NeutralSentiment() SentimentResult {
	return SentimentResult{Probability: 0.5, Label: LabelNeutral}
}

// DegradedSentiment is NeutralSentiment with the degraded flag set.
func DegradedSentiment() SentimentResult {
	r := NeutralSentiment()
	r.Degraded = true
	return r
}
