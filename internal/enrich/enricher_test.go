package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/oracle"
)

type stubSentiment struct {
	result  *oracle.Sentiment
	err     error
	calls   int
	gotText string
}

func (s *stubSentiment) Name() string { return "stub" }

func (s *stubSentiment) Analyze(_ context.Context, text string) (*oracle.Sentiment, error) {
	s.calls++
	s.gotText = text
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubEntities struct {
	spans []oracle.Span
	err   error
	calls int
}

func (s *stubEntities) Name() string { return "stub" }

func (s *stubEntities) Recognize(_ context.Context, _ string) ([]oracle.Span, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.spans, nil
}

func TestEnrich_BothOraclesSucceed(t *testing.T) {
	sent := &stubSentiment{result: &oracle.Sentiment{Label: "negative", Score: 0.93}}
	ents := &stubEntities{spans: []oracle.Span{
		{Text: "Reuters", Label: "ORG"},
		{Text: "London", Label: "GPE"},
	}}
	e := New(sent, ents, Options{})

	got := e.Enrich(context.Background(), "Reuters reports from London")
	if got.Sentiment != "negative" {
		t.Errorf("Expected sentiment %q, got %q", "negative", got.Sentiment)
	}
	if got.SentimentScore != 0.93 {
		t.Errorf("Expected score 0.93, got %v", got.SentimentScore)
	}
	if got.EntityCount != 2 {
		t.Errorf("Expected 2 entities, got %d", got.EntityCount)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", got.Warnings)
	}
}

func TestEnrich_SentimentFailureIsIsolated(t *testing.T) {
	sent := &stubSentiment{err: errors.New("backend down")}
	ents := &stubEntities{spans: []oracle.Span{{Text: "NASA", Label: "ORG"}}}
	e := New(sent, ents, Options{})

	got := e.Enrich(context.Background(), "NASA confirms launch")
	if got.Sentiment != model.SentimentUnknown {
		t.Errorf("Expected sentiment %q, got %q", model.SentimentUnknown, got.Sentiment)
	}
	if got.SentimentScore != 0 {
		t.Errorf("Expected zero score, got %v", got.SentimentScore)
	}
	if got.EntityCount != 1 {
		t.Errorf("Expected entity count unaffected by sentiment failure, got %d", got.EntityCount)
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("Expected one warning, got %v", got.Warnings)
	}
	if !strings.Contains(got.Warnings[0], "sentiment") {
		t.Errorf("Expected warning to name the failed oracle, got %q", got.Warnings[0])
	}
}

func TestEnrich_EntityFailureIsIsolated(t *testing.T) {
	sent := &stubSentiment{result: &oracle.Sentiment{Label: "neutral", Score: 0.6}}
	ents := &stubEntities{err: errors.New("backend down")}
	e := New(sent, ents, Options{})

	got := e.Enrich(context.Background(), "some article")
	if got.Sentiment != "neutral" {
		t.Errorf("Expected sentiment to survive entity failure, got %q", got.Sentiment)
	}
	if got.EntityCount != 0 {
		t.Errorf("Expected zero entity count, got %d", got.EntityCount)
	}
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "entities") {
		t.Errorf("Expected one entity warning, got %v", got.Warnings)
	}
}

func TestEnrich_NilOracles(t *testing.T) {
	e := New(nil, nil, Options{})

	got := e.Enrich(context.Background(), "some article")
	if got.Sentiment != model.SentimentUnknown {
		t.Errorf("Expected sentiment %q, got %q", model.SentimentUnknown, got.Sentiment)
	}
	if len(got.Warnings) != 2 {
		t.Errorf("Expected two warnings, got %v", got.Warnings)
	}
}

func TestEnrich_TruncatesSentimentInput(t *testing.T) {
	sent := &stubSentiment{result: &oracle.Sentiment{Label: "neutral", Score: 0.5}}
	ents := &stubEntities{}
	e := New(sent, ents, Options{})

	long := strings.Repeat("a", 2*oracle.MaxSentimentInput)
	e.Enrich(context.Background(), long)
	if len([]rune(sent.gotText)) != oracle.MaxSentimentInput {
		t.Errorf("Expected sentiment input truncated to %d characters, got %d",
			oracle.MaxSentimentInput, len([]rune(sent.gotText)))
	}
}

func TestEnrich_CachesCompleteResults(t *testing.T) {
	sent := &stubSentiment{result: &oracle.Sentiment{Label: "positive", Score: 0.8}}
	ents := &stubEntities{spans: []oracle.Span{{Text: "EU", Label: "ORG"}}}
	e := New(sent, ents, Options{Cache: cache.NewMemoryCache(time.Minute, time.Minute)})

	first := e.Enrich(context.Background(), "EU announces policy")
	second := e.Enrich(context.Background(), "EU announces policy")
	if sent.calls != 1 || ents.calls != 1 {
		t.Errorf("Expected one oracle round trip, got sentiment=%d entities=%d", sent.calls, ents.calls)
	}
	if first.Sentiment != second.Sentiment || first.SentimentScore != second.SentimentScore ||
		first.EntityCount != second.EntityCount {
		t.Errorf("Expected cached result to match original: %+v vs %+v", first, second)
	}
}

func TestEnrich_DoesNotCacheDegradedResults(t *testing.T) {
	sent := &stubSentiment{err: errors.New("backend down")}
	ents := &stubEntities{}
	e := New(sent, ents, Options{Cache: cache.NewMemoryCache(time.Minute, time.Minute)})

	e.Enrich(context.Background(), "some article")
	e.Enrich(context.Background(), "some article")
	if sent.calls != 2 {
		t.Errorf("Expected degraded result to be retried, got %d sentiment calls", sent.calls)
	}
}
