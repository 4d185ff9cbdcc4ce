// Package dataset loads labeled training samples from tabular sources.
// Every source must expose two named columns, text and label; row order
// is preserved and no deduplication is performed.
package dataset

import "github.com/veridict/veridict/internal/model"

// Sample is one labeled training document.
type Sample struct {
	Text  string
	Label model.Label
}

// Split separates samples into parallel document/label slices for the
// pipeline's Train call.
func Split(samples []Sample) ([]string, []model.Label) {
	docs := make([]string, len(samples))
	labels := make([]model.Label, len(samples))
	for i, s := range samples {
		docs[i] = s.Text
		labels[i] = s.Label
	}
	return docs, labels
}
