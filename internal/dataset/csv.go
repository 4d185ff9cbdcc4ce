package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// LoadCSV reads labeled samples from a CSV file. The header row must
// contain "text" and "label" columns (any order, any case); extra
// columns are ignored. Rows with empty text are skipped.
func LoadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty csv", model.ErrMalformedInput)
	}

	textCol, labelCol := -1, -1
	for i, h := range rows[0] {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), "text"):
			textCol = i
		case strings.EqualFold(strings.TrimSpace(h), "label"):
			labelCol = i
		}
	}
	if textCol == -1 || labelCol == -1 {
		return nil, fmt.Errorf("%w: csv must contain 'text' and 'label' header columns", model.ErrMalformedInput)
	}

	var samples []Sample
	for i, row := range rows[1:] {
		if textCol >= len(row) || labelCol >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[textCol])
		if text == "" {
			continue
		}
		label, err := model.ParseLabel(row[labelCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		samples = append(samples, Sample{Text: text, Label: label})
	}
	return samples, nil
}
