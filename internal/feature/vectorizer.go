// Package feature implements the frozen sparse lexical feature space:
// a TF-IDF vectorizer fitted once over a normalized corpus and reused
// unchanged at inference time.
package feature

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/textnorm"
)

// DefaultDocFreqCeiling drops terms present in more than this fraction of
// training documents. Guards against corpus-specific noise words
// dominating the space.
const DefaultDocFreqCeiling = 0.70

// Vectorizer maps normalized documents into a fixed-dimensionality
// TF-IDF representation. After Fit the vocabulary is frozen: any
// document vectorized later is projected into the same dimensionality
// and unseen terms are dropped.
type Vectorizer struct {
	vocabulary     map[string]int
	terms          []string // index -> term, sorted for stable dimensions
	idf            []float64
	docFreqCeiling float64
	stopwords      map[string]struct{}
	fitted         bool
}

// NewVectorizer creates an unfitted vectorizer. A non-positive ceiling
// falls back to DefaultDocFreqCeiling.
func NewVectorizer(docFreqCeiling float64) *Vectorizer {
	if docFreqCeiling <= 0 {
		docFreqCeiling = DefaultDocFreqCeiling
	}
	return &Vectorizer{
		docFreqCeiling: docFreqCeiling,
		stopwords:      textnorm.StopwordSet(),
	}
}

// Fit builds the vocabulary and IDF weights from the corpus. Terms in
// the built-in stopword list and terms above the document-frequency
// ceiling are excluded. Re-fitting replaces the space entirely; any
// classifier fitted against the old space must be retrained.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("fit feature space: %w", model.ErrMalformedInput)
	}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range strings.Fields(doc) {
			if _, stop := v.stopwords[term]; stop {
				continue
			}
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(corpus))
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if float64(count)/n > v.docFreqCeiling {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.terms = terms
	v.fitted = true
	return nil
}

// Fitted reports whether the space has been fitted or restored.
func (v *Vectorizer) Fitted() bool { return v.fitted }

// Dimension returns the frozen vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.terms) }

// Transform projects each document into the frozen space.
func (v *Vectorizer) Transform(docs []string) ([][]float64, error) {
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vec, err := v.TransformOne(doc)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// TransformOne projects a single normalized document. Out-of-vocabulary
// terms contribute zero weight; a document of only unknown terms (or an
// empty document) yields an all-zero vector, not an error.
func (v *Vectorizer) TransformOne(doc string) ([]float64, error) {
	if !v.fitted {
		return nil, fmt.Errorf("transform: %w", model.ErrUninitializedModel)
	}

	vec := make([]float64, len(v.terms))
	tf := make(map[int]int)
	total := 0
	for _, term := range strings.Fields(doc) {
		if idx, ok := v.vocabulary[term]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}

	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}

	// L2 normalize
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Snapshot is the serializable form of a fitted space. Terms are stored
// in dimension order so restore reproduces identical projections.
type Snapshot struct {
	Terms          []string
	IDF            []float64
	DocFreqCeiling float64
}

// Snapshot captures the fitted state for persistence.
func (v *Vectorizer) Snapshot() (*Snapshot, error) {
	if !v.fitted {
		return nil, fmt.Errorf("snapshot feature space: %w", model.ErrUninitializedModel)
	}
	return &Snapshot{
		Terms:          append([]string(nil), v.terms...),
		IDF:            append([]float64(nil), v.idf...),
		DocFreqCeiling: v.docFreqCeiling,
	}, nil
}

// FromSnapshot restores a fitted vectorizer from a persisted snapshot.
func FromSnapshot(s Snapshot) (*Vectorizer, error) {
	if len(s.Terms) != len(s.IDF) {
		return nil, fmt.Errorf("restore feature space: %w", model.ErrDimensionMismatch)
	}
	v := NewVectorizer(s.DocFreqCeiling)
	v.terms = append([]string(nil), s.Terms...)
	v.idf = append([]float64(nil), s.IDF...)
	v.vocabulary = make(map[string]int, len(s.Terms))
	for i, term := range s.Terms {
		v.vocabulary[term] = i
	}
	v.fitted = true
	return v, nil
}
