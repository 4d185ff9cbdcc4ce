package oracle

import (
	"context"
	"fmt"

	prose "github.com/jdkato/prose/v2"
)

// ProseEntities implements EntityOracle with the prose NER model, loaded
// in-process. Useful as the default backend when no inference server is
// available.
type ProseEntities struct{}

// NewProseEntities creates a new in-process entity oracle.
func NewProseEntities() *ProseEntities {
	return &ProseEntities{}
}

// Name returns the backend name
func (p *ProseEntities) Name() string {
	return "prose"
}

// Recognize runs NER over the full text and returns the entity spans.
func (p *ProseEntities) Recognize(ctx context.Context, text string) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	ents := doc.Entities()
	spans := make([]Span, 0, len(ents))
	for _, e := range ents {
		spans = append(spans, Span{Text: e.Text, Label: e.Label})
	}
	return spans, nil
}
