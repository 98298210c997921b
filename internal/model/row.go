// Package model defines the core domain models used throughout the application.
package model

// Row is one record from the raw dataset: a flagged page with its filename,
// display title, and extracted URL. Rows are immutable after ingestion apart
// from the one-time title cleanup applied by the normalizer.
type Row struct {
	Filename string
	Title    string
	URL      string
}

// ClassifiedRow is a Row plus the single category label assigned by the
// classifier. The label is the model's raw trimmed response; it is not
// guaranteed to be an exact taxonomy member until normalized downstream.
type ClassifiedRow struct {
	Row
	Label string
}
