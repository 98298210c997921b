// Package report summarizes classification output and merges labels back
// onto the full cleaned title set.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/datadesk/scrub/internal/model"
	"github.com/datadesk/scrub/internal/taxonomy"
)

// LabelCount is one row of a label summary.
type LabelCount struct {
	Label string
	Count int
	Share float64
}

// Clean drops rows with empty titles and normalizes labels so that model
// formatting quirks collapse into the plain category names.
func Clean(rows []model.ClassifiedRow) []model.ClassifiedRow {
	cleaned := make([]model.ClassifiedRow, 0, len(rows))
	for _, row := range rows {
		if row.Title == "" {
			continue
		}
		row.Label = taxonomy.NormalizeLabel(row.Label)
		cleaned = append(cleaned, row)
	}
	return cleaned
}

// Summarize tabulates label counts and shares, largest first. Rows with an
// empty label are counted under their own bucket so coverage gaps stay
// visible.
func Summarize(rows []model.ClassifiedRow) []LabelCount {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Label]++
	}

	summary := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		summary = append(summary, LabelCount{
			Label: label,
			Count: count,
			Share: float64(count) / float64(len(rows)),
		})
	}
	sort.Slice(summary, func(a, b int) bool {
		if summary[a].Count != summary[b].Count {
			return summary[a].Count > summary[b].Count
		}
		return summary[a].Label < summary[b].Label
	})
	return summary
}

// Merge left-joins labels onto the full cleaned set by title. Titles never
// classified keep an empty label; classified rows with no counterpart in
// the cleaned set are dropped.
func Merge(cleaned []model.Row, classified []model.ClassifiedRow) []model.ClassifiedRow {
	labels := make(map[string]string, len(classified))
	for _, row := range classified {
		if _, seen := labels[row.Title]; !seen {
			labels[row.Title] = row.Label
		}
	}

	merged := make([]model.ClassifiedRow, 0, len(cleaned))
	for _, row := range cleaned {
		merged = append(merged, model.ClassifiedRow{
			Row:   row,
			Label: labels[row.Title],
		})
	}
	return merged
}

// RenderSummary writes the label summary as an aligned text table.
func RenderSummary(w io.Writer, labelColumn string, summary []LabelCount) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{labelColumn, "Count", "Share"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range summary {
		label := row.Label
		if label == "" {
			label = "(unlabeled)"
		}
		table.Append([]string{
			label,
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.1f%%", row.Share*100),
		})
	}
	table.Render()
}
