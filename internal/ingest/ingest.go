// Package ingest reads the raw flagged-page dataset from disk.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/datadesk/scrub/internal/common"
	"github.com/datadesk/scrub/internal/model"
)

// rawDocument mirrors the row-oriented JSON export: an array of rows, each
// holding its column values in fixed order (filename, title, url).
type rawDocument struct {
	Rows []rawRow `json:"rows"`
}

type rawRow struct {
	Columns []*string `json:"columns"`
}

// Load reads the raw JSON dataset at path and converts it into Rows.
// Missing or null column values become empty strings; the URL column is
// still markup-wrapped here and is unwrapped by the normalizer.
func Load(path string) ([]model.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", common.ErrIngestion, path, err)
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", common.ErrIngestion, path, err)
	}

	rows := make([]model.Row, 0, len(doc.Rows))
	for _, raw := range doc.Rows {
		rows = append(rows, model.Row{
			Filename: column(raw.Columns, 0),
			Title:    column(raw.Columns, 1),
			URL:      column(raw.Columns, 2),
		})
	}

	return rows, nil
}

func column(cols []*string, i int) string {
	if i >= len(cols) || cols[i] == nil {
		return ""
	}
	return *cols[i]
}
