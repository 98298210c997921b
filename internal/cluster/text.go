// Package cluster is a standalone exploratory analyzer: it vectorizes
// titles, partitions them with k-means, and cross-tabulates cluster
// membership against a curated keyword taxonomy. It never touches the
// classification outputs.
package cluster

import (
	"sort"
	"strings"
	"unicode"
)

// tokenize splits text into lowercase tokens of letters, digits, and
// internal hyphens/apostrophes, dropping stopwords and single characters.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := strings.Trim(current.String(), "-'")
		current.Reset()
		if len(token) <= 1 || isStopword(token) {
			return
		}
		tokens = append(tokens, token)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// ngrams joins consecutive token windows of size n with single spaces.
func ngrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

// TermCount is one term and its corpus frequency.
type TermCount struct {
	Term  string
	Count int
}

// TopNgrams counts stopword-filtered n-grams across all titles and returns
// the limit most frequent, ties broken alphabetically for stable output.
func TopNgrams(titles []string, n, limit int) []TermCount {
	counts := make(map[string]int)
	for _, title := range titles {
		for _, gram := range ngrams(tokenize(title), n) {
			counts[gram]++
		}
	}

	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})

	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
