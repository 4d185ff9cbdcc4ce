package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/veridict/veridict/internal/model"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads labeled samples from a SQLite table with text and
// label columns.
func LoadSQLite(ctx context.Context, path, table string) ([]Sample, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", model.ErrMalformedInput, table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT text, label FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var text, rawLabel string
		if err := rows.Scan(&text, &rawLabel); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		label, err := model.ParseLabel(rawLabel)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample{Text: text, Label: label})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return samples, nil
}
