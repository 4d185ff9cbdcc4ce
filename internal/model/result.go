package model

import "time"

// SentimentUnknown is the sentinel sentiment label used when the
// sentiment oracle is disabled, failed, or timed out. It lets consumers
// distinguish "neutral sentiment" from "sentiment unknown".
const SentimentUnknown = "unknown"

// PredictionResult is the consumer-facing record for a single triage
// call. Created fresh per inference call and never mutated afterwards.
type PredictionResult struct {
	ID         string    `json:"id"`          // ULID assigned at creation
	Prediction string    `json:"prediction"`  // "Fake" or "Real"
	Confidence float64   `json:"confidence"`  // absolute decision margin, >= 0
	AnalyzedAt time.Time `json:"analyzed_at"` // when the prediction was made

	// Auxiliary signals from the enrichment stage. Confidence here is a
	// distance-from-boundary proxy, not a calibrated probability.
	Sentiment      string  `json:"sentiment"`       // oracle label, or "unknown"
	SentimentScore float64 `json:"sentiment_score"` // in [0,1], 0 when unknown
	EntityCount    int     `json:"entities_count"`  // recognized entity spans, >= 0

	// Warnings records degraded enrichment (oracle failures, timeouts).
	// A populated prediction with warnings is still a valid result.
	Warnings []string `json:"warnings,omitempty"`
}
