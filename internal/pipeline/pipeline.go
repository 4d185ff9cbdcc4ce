// Package pipeline orchestrates the text-to-decision flow: normalize,
// vectorize against the frozen feature space, classify, enrich, and
// assemble the result. It also owns persistence of the two learned
// artifacts.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/veridict/veridict/internal/classify"
	"github.com/veridict/veridict/internal/enrich"
	"github.com/veridict/veridict/internal/feature"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/textnorm"
)

// Controller wires the normalizer, feature space, classifier, and
// enricher together. Training and artifact loading are writer
// operations; predictions are readers and may run concurrently with
// each other but never with a writer.
type Controller struct {
	cfg        *model.Config
	normalizer *textnorm.Normalizer
	enricher   *enrich.Enricher

	mu    sync.RWMutex
	space *feature.Vectorizer
	clf   *classify.Classifier
}

// New creates a controller with empty (unfitted) learned state. The
// enricher may be nil when only training is needed.
func New(cfg *model.Config, normalizer *textnorm.Normalizer, enricher *enrich.Enricher) *Controller {
	return &Controller{
		cfg:        cfg,
		normalizer: normalizer,
		enricher:   enricher,
		space:      feature.NewVectorizer(cfg.Training.DocFreqCeiling),
		clf:        classify.New(cfg.Training.Aggressiveness, cfg.Training.MaxPasses),
	}
}

// Dimension returns the fitted feature space dimensionality, or 0.
func (c *Controller) Dimension() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.space.Dimension()
}

// Train fits the whole pipeline on a labeled batch: normalize every
// document, fit the feature space once, transform the batch, fit the
// classifier once. Both label classes must be present; a classifier
// trained on a single class is a degenerate state.
func (c *Controller) Train(docs []string, labels []model.Label) error {
	if len(docs) == 0 || len(docs) != len(labels) {
		return fmt.Errorf("train: %d documents vs %d labels: %w",
			len(docs), len(labels), model.ErrMalformedInput)
	}
	var haveReal, haveFake bool
	for _, l := range labels {
		switch l {
		case model.LabelFake:
			haveFake = true
		default:
			haveReal = true
		}
	}
	if !haveReal || !haveFake {
		return fmt.Errorf("train: %w", model.ErrDegenerateTrainingSet)
	}

	normalized := make([]string, len(docs))
	for i, doc := range docs {
		normalized[i] = c.normalizer.Normalize(doc)
	}

	// Fit into fresh instances so a failed retrain can never leave a
	// classifier paired with a mismatched feature space.
	space := feature.NewVectorizer(c.cfg.Training.DocFreqCeiling)
	if err := space.Fit(normalized); err != nil {
		return err
	}
	vectors, err := space.Transform(normalized)
	if err != nil {
		return err
	}
	clf := classify.New(c.cfg.Training.Aggressiveness, c.cfg.Training.MaxPasses)
	if err := clf.Fit(vectors, labels); err != nil {
		return err
	}

	c.mu.Lock()
	c.space = space
	c.clf = clf
	c.mu.Unlock()
	return nil
}

// PredictOne triages a single raw text. The classify path (normalize,
// transform, decide) and the enrich path (oracle calls) have no shared
// state and run concurrently; the result is assembled only after both
// complete. Structural model errors are fatal to the call; enrichment
// failures degrade to "unknown" signals inside the result.
func (c *Controller) PredictOne(ctx context.Context, rawText string) (*model.PredictionResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("predict: empty document: %w", model.ErrMalformedInput)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.space.Fitted() || !c.clf.Fitted() {
		return nil, fmt.Errorf("predict: %w", model.ErrUninitializedModel)
	}

	var (
		wg         sync.WaitGroup
		label      model.Label
		margin     float64
		clsErr     error
		enrichment enrich.Enrichment
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		vec, err := c.space.TransformOne(c.normalizer.Normalize(rawText))
		if err != nil {
			clsErr = err
			return
		}
		margin, err = c.clf.Decision(vec)
		if err != nil {
			clsErr = err
			return
		}
		if margin >= 0 {
			label = model.LabelFake
		} else {
			label = model.LabelReal
		}
	}()

	if c.enricher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enrichment = c.enricher.Enrich(ctx, rawText)
		}()
	} else {
		enrichment = enrich.Enrichment{
			Sentiment: model.SentimentUnknown,
			Warnings:  []string{"enrichment disabled"},
		}
	}

	wg.Wait()
	if clsErr != nil {
		return nil, clsErr
	}

	return &model.PredictionResult{
		ID:             ulid.Make().String(),
		Prediction:     label.String(),
		Confidence:     math.Abs(margin),
		AnalyzedAt:     time.Now().UTC(),
		Sentiment:      enrichment.Sentiment,
		SentimentScore: enrichment.SentimentScore,
		EntityCount:    enrichment.EntityCount,
		Warnings:       enrichment.Warnings,
	}, nil
}
