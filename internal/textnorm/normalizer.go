package textnorm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

var (
	urlPattern     = regexp.MustCompile(`\b(?:http|www)\S*`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	nonWordPattern = regexp.MustCompile(`[^\w\s]`)
)

// Normalizer performs deterministic text canonicalization: case folding,
// URL/mention/hashtag-marker stripping, punctuation removal, stopword
// removal, and lemmatization. Normalize is a fixed point:
// Normalize(Normalize(x)) == Normalize(x).
type Normalizer struct {
	stopwords  map[string]struct{}
	lemmatizer *golem.Lemmatizer
}

// New creates a Normalizer with the built-in English stopword set and the
// embedded English lemmatization dictionary. Dictionary loading happens
// once here, not in Normalize, so inference stays allocation-cheap.
func New() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemmatizer dictionary: %w", err)
	}
	return &Normalizer{
		stopwords:  StopwordSet(),
		lemmatizer: lem,
	}, nil
}

// Normalize canonicalizes raw text into a single string of cleaned,
// space-joined tokens. The step order is fixed: each step assumes the
// previous one's output. Empty and stopword-only inputs yield "".
func (n *Normalizer) Normalize(text string) string {
	s := strings.ToLower(text)
	s = urlPattern.ReplaceAllString(s, " ")
	s = mentionPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "#", "")
	s = nonWordPattern.ReplaceAllString(s, " ")

	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		lemma := n.lemmatizer.Lemma(tok)
		// A lemma can land on a stopword ("better" -> "good" style
		// mappings); filter again so normalization stays idempotent.
		if _, stop := n.stopwords[lemma]; stop {
			continue
		}
		tokens = append(tokens, lemma)
	}
	return strings.Join(tokens, " ")
}
