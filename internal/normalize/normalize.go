// Package normalize cleans and de-duplicates raw title rows before any
// downstream classification or analysis.
package normalize

import (
	"regexp"
	"strings"

	"github.com/datadesk/scrub/internal/model"
)

var (
	// urlWrapper matches the markup wrapper around the source URL column,
	// e.g. "[https://example.mil/page]".
	urlWrapper = regexp.MustCompile(`\[(.*?)\]`)

	// singleTokenWithDigit matches a whole title that is one whitespace-free
	// token containing at least one numeral, e.g. "X7f3" or "IMG_0042".
	singleTokenWithDigit = regexp.MustCompile(`^\S*\d\S*$`)

	// numericCode matches machine-generated photo identifiers of the form
	// NNNNNN-X-XXXX-N with an optional file extension.
	numericCode = regexp.MustCompile(`^\d{6}-[A-Z]-[A-Z0-9]+-\d+(\.[A-Za-z0-9]+)?$`)
)

// The apostrophe in titles arrives double-encoded from the scrape.
const mojibakeApostrophe = "â€™"

// Result holds the normalized row set plus diagnostics about what was dropped.
type Result struct {
	Rows       []model.Row
	Noise      []string
	Duplicates int
}

// ExtractURL unwraps the markup-wrapped URL column. Returns an empty string
// when the wrapper pattern is absent.
func ExtractURL(raw string) string {
	m := urlWrapper.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// CleanTitle repairs the known apostrophe mis-encoding.
func CleanTitle(title string) string {
	return strings.ReplaceAll(title, mojibakeApostrophe, "'")
}

// IsNoise reports whether a title is a machine-generated artifact rather
// than a human-readable page title.
func IsNoise(title string) bool {
	if title == "" {
		return false
	}
	return singleTokenWithDigit.MatchString(title) || numericCode.MatchString(title)
}

// Normalize cleans every row, drops noise rows, and de-duplicates by exact
// post-cleanup title. The first occurrence of a title wins and first-seen
// order is preserved. The transform is pure and idempotent.
func Normalize(rows []model.Row) Result {
	result := Result{Rows: make([]model.Row, 0, len(rows))}
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		row.Title = CleanTitle(row.Title)

		// Unwrap only when the wrapper is present; bare URLs from an
		// earlier pass go through unchanged.
		if urlWrapper.MatchString(row.URL) {
			row.URL = ExtractURL(row.URL)
		}

		if IsNoise(row.Title) {
			result.Noise = append(result.Noise, row.Title)
			continue
		}

		if _, ok := seen[row.Title]; ok {
			result.Duplicates++
			continue
		}
		seen[row.Title] = struct{}{}

		result.Rows = append(result.Rows, row)
	}

	return result
}
