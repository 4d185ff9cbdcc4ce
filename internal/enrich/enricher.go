// Package enrich augments a raw decision with auxiliary signals from the
// two external oracles. Both oracle calls run concurrently against the
// raw (non-normalized) text; failures degrade to an explicit "unknown"
// signal instead of failing the prediction.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/oracle"
)

// Enrichment summarizes the oracle output for one document.
type Enrichment struct {
	Sentiment      string   `json:"sentiment"`
	SentimentScore float64  `json:"sentiment_score"`
	EntityCount    int      `json:"entity_count"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Options configures optional enricher collaborators.
type Options struct {
	// Cache stores enrichment results keyed by document hash. Nil
	// disables caching.
	Cache cache.Cache

	// Limiter rate-limits outbound oracle calls. Nil disables limiting.
	Limiter *rate.Limiter

	// Timeout bounds each oracle call. Expiry counts as oracle failure.
	// Zero falls back to 10s.
	Timeout time.Duration

	// CacheTTL for stored enrichments. Zero uses the cache default.
	CacheTTL time.Duration
}

// Enricher calls the sentiment and entity oracles and summarizes their
// output. Either oracle may be nil, in which case its signal is reported
// as unavailable.
type Enricher struct {
	sentiment oracle.SentimentOracle
	entities  oracle.EntityOracle
	opts      Options
}

// New creates an enricher over the given oracle backends.
func New(sentiment oracle.SentimentOracle, entities oracle.EntityOracle, opts Options) *Enricher {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Enricher{
		sentiment: sentiment,
		entities:  entities,
		opts:      opts,
	}
}

// Enrich runs both oracles concurrently and joins their results. It
// always returns a usable Enrichment: oracle failures surface as the
// "unknown" sentiment label / zero entity count plus a warning, so the
// caller can tell "neutral" from "unknown".
func (e *Enricher) Enrich(ctx context.Context, rawText string) Enrichment {
	key := cache.Key(rawText)
	if e.opts.Cache != nil {
		if data, found := e.opts.Cache.Get(key); found {
			var cached Enrichment
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	var (
		wg      sync.WaitGroup
		sent    *oracle.Sentiment
		sentErr error
		spans   []oracle.Span
		entErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sent, sentErr = e.analyzeSentiment(ctx, rawText)
	}()
	go func() {
		defer wg.Done()
		spans, entErr = e.recognizeEntities(ctx, rawText)
	}()
	wg.Wait()

	result := Enrichment{Sentiment: model.SentimentUnknown}
	if sentErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("sentiment: %v", sentErr))
	} else {
		result.Sentiment = sent.Label
		result.SentimentScore = sent.Score
	}
	if entErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("entities: %v", entErr))
	} else {
		result.EntityCount = len(spans)
	}

	// Only complete enrichments are cached; degraded ones retry next time.
	if e.opts.Cache != nil && len(result.Warnings) == 0 {
		if data, err := json.Marshal(result); err == nil {
			_ = e.opts.Cache.Set(key, data, e.opts.CacheTTL)
		}
	}

	return result
}

func (e *Enricher) analyzeSentiment(ctx context.Context, rawText string) (*oracle.Sentiment, error) {
	if e.sentiment == nil {
		return nil, fmt.Errorf("%w: no sentiment backend configured", model.ErrOracleUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	if err := e.waitLimiter(callCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracleUnavailable, err)
	}

	sent, err := e.sentiment.Analyze(callCtx, truncate(rawText, oracle.MaxSentimentInput))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracleUnavailable, err)
	}
	return sent, nil
}

func (e *Enricher) recognizeEntities(ctx context.Context, rawText string) ([]oracle.Span, error) {
	if e.entities == nil {
		return nil, fmt.Errorf("%w: no entity backend configured", model.ErrOracleUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	if err := e.waitLimiter(callCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracleUnavailable, err)
	}

	spans, err := e.entities.Recognize(callCtx, rawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrOracleUnavailable, err)
	}
	return spans, nil
}

func (e *Enricher) waitLimiter(ctx context.Context) error {
	if e.opts.Limiter == nil {
		return nil
	}
	return e.opts.Limiter.Wait(ctx)
}

// truncate caps text at max characters, respecting rune boundaries.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
