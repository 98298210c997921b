package storage

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/datadesk/scrub/internal/model"
)

// WriteClassified writes classified rows as delimited text with a header
// row: the original row columns plus the assigned label column.
func WriteClassified(w io.Writer, rows []model.ClassifiedRow, labelColumn string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"filename", "title", "url", labelColumn}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write([]string{row.Filename, row.Title, row.URL, row.Label}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRows writes unlabeled rows with a filename,title,url header.
func WriteRows(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"filename", "title", "url"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write([]string{row.Filename, row.Title, row.URL}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadRows reads an unlabeled row table written by WriteRows. Columns are
// located by header name.
func ReadRows(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"filename", "title", "url"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var rows []model.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		rows = append(rows, model.Row{
			Filename: record[index["filename"]],
			Title:    record[index["title"]],
			URL:      record[index["url"]],
		})
	}

	return rows, nil
}

// ReadClassified reads a classified row table. Columns are located by
// header name; beyond column presence there is no schema validation.
func ReadClassified(r io.Reader, labelColumn string) ([]model.ClassifiedRow, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"filename", "title", "url", labelColumn} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var rows []model.ClassifiedRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		rows = append(rows, model.ClassifiedRow{
			Row: model.Row{
				Filename: record[index["filename"]],
				Title:    record[index["title"]],
				URL:      record[index["url"]],
			},
			Label: record[index[labelColumn]],
		})
	}

	return rows, nil
}
