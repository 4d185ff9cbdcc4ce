// Package oracle defines the call contracts for the two external text
// oracles (sentiment classification and named-entity recognition) and
// their backends. Oracles are opaque models consumed through a fixed
// interface; production and test builds differ only in which
// implementation satisfies it.
package oracle

import "context"

// MaxSentimentInput is the sentiment oracle's own input limit, in
// characters. Callers truncate to this cap before calling Analyze.
const MaxSentimentInput = 512

// Sentiment is the highest-confidence class reported by a sentiment
// oracle.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"` // in [0,1]
}

// Span is a recognized entity span. The triage core only consumes the
// count; type and boundaries are carried for richer consumers.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// SentimentOracle analyzes the polarity of a short text.
type SentimentOracle interface {
	// Name returns the backend name
	Name() string

	// Analyze returns the top-ranked sentiment class for the text.
	Analyze(ctx context.Context, text string) (*Sentiment, error)
}

// EntityOracle recognizes named entities in a text.
type EntityOracle interface {
	// Name returns the backend name
	Name() string

	// Recognize returns the recognized entity spans.
	Recognize(ctx context.Context, text string) ([]Span, error)
}
