// Package classify implements the online linear decision boundary: a
// passive-aggressive (PA-I) model trained incrementally per example over
// the frozen feature space.
package classify

import (
	"fmt"

	"github.com/veridict/veridict/internal/model"
)

// Defaults for the update rule. Configurable, preserved from the
// reference setup.
const (
	DefaultAggressiveness = 1.0
	DefaultMaxPasses      = 100
)

// Classifier is a linear weight vector plus bias over the feature space
// dimensionality. Its dimensionality must always equal the feature
// space's; the two are persisted together as one artifact.
type Classifier struct {
	weights        []float64
	bias           float64
	aggressiveness float64
	maxPasses      int
}

// New creates an unfitted classifier. Non-positive parameters fall back
// to the defaults.
func New(aggressiveness float64, maxPasses int) *Classifier {
	if aggressiveness <= 0 {
		aggressiveness = DefaultAggressiveness
	}
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	return &Classifier{
		aggressiveness: aggressiveness,
		maxPasses:      maxPasses,
	}
}

// Fit trains on (vector, label) pairs with the PA-I update rule: an
// example already classified with margin >= 1 leaves the weights
// unchanged; otherwise the weights move proportionally to the margin
// violation, with the step bounded by the aggressiveness parameter.
// Passes are capped at maxPasses and stop early on a clean pass. The
// update visits examples in input order with no randomness, so identical
// input sequences produce bit-identical weights.
func (c *Classifier) Fit(vectors [][]float64, labels []model.Label) error {
	if len(vectors) == 0 || len(vectors) != len(labels) {
		return fmt.Errorf("fit classifier: %w", model.ErrMalformedInput)
	}
	dim := len(vectors[0])
	for _, vec := range vectors {
		if len(vec) != dim {
			return fmt.Errorf("fit classifier: %w", model.ErrDimensionMismatch)
		}
	}

	c.weights = make([]float64, dim)
	c.bias = 0

	for pass := 0; pass < c.maxPasses; pass++ {
		updates := 0
		for i, x := range vectors {
			y := -1.0
			if labels[i] == model.LabelFake {
				y = 1.0
			}
			score := dot(c.weights, x) + c.bias
			loss := 1 - y*score
			if loss <= 0 {
				continue
			}
			// The +1 accounts for the implicit bias feature.
			tau := loss / (dot(x, x) + 1)
			if tau > c.aggressiveness {
				tau = c.aggressiveness
			}
			for j := range x {
				c.weights[j] += tau * y * x[j]
			}
			c.bias += tau * y
			updates++
		}
		if updates == 0 {
			break
		}
	}
	return nil
}

// Fitted reports whether the classifier has been fitted or restored.
func (c *Classifier) Fitted() bool { return c.weights != nil }

// Dimension returns the weight vector length.
func (c *Classifier) Dimension() int { return len(c.weights) }

// Decision returns the raw signed linear score for a vector. Its
// absolute value is exposed externally as confidence; it is a
// distance-from-boundary proxy, not a calibrated probability.
func (c *Classifier) Decision(vec []float64) (float64, error) {
	if c.weights == nil {
		return 0, fmt.Errorf("decision: %w", model.ErrUninitializedModel)
	}
	if len(vec) != len(c.weights) {
		return 0, fmt.Errorf("decision: vector length %d vs weights %d: %w",
			len(vec), len(c.weights), model.ErrDimensionMismatch)
	}
	return dot(c.weights, vec) + c.bias, nil
}

// Predict returns the sign of the decision function as a label.
func (c *Classifier) Predict(vec []float64) (model.Label, error) {
	score, err := c.Decision(vec)
	if err != nil {
		return model.LabelReal, err
	}
	if score >= 0 {
		return model.LabelFake, nil
	}
	return model.LabelReal, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Snapshot is the serializable form of a fitted classifier.
type Snapshot struct {
	Weights        []float64
	Bias           float64
	Aggressiveness float64
	MaxPasses      int
}

// Snapshot captures the fitted state for persistence.
func (c *Classifier) Snapshot() (*Snapshot, error) {
	if c.weights == nil {
		return nil, fmt.Errorf("snapshot classifier: %w", model.ErrUninitializedModel)
	}
	return &Snapshot{
		Weights:        append([]float64(nil), c.weights...),
		Bias:           c.bias,
		Aggressiveness: c.aggressiveness,
		MaxPasses:      c.maxPasses,
	}, nil
}

// FromSnapshot restores a fitted classifier from a persisted snapshot.
func FromSnapshot(s Snapshot) *Classifier {
	c := New(s.Aggressiveness, s.MaxPasses)
	c.weights = make([]float64, len(s.Weights))
	copy(c.weights, s.Weights)
	c.bias = s.Bias
	return c
}
