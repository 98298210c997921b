package cluster

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// VectorizerConfig controls the bag-of-terms weighting.
type VectorizerConfig struct {
	// MinDF excludes terms appearing in fewer documents than this.
	MinDF int
	// MaxDFRatio excludes terms appearing in more than this share of
	// documents.
	MaxDFRatio float64
	// NgramMax is the largest n-gram size; 2 means unigrams and bigrams.
	NgramMax int
}

// Matrix is the TF-IDF weighted, L2-normalized document-term matrix plus
// its vocabulary in column order.
type Matrix struct {
	TFIDF *mat.Dense
	Terms []string
}

// ErrEmptyVocabulary means document-frequency filtering removed every term.
var ErrEmptyVocabulary = errors.New("empty vocabulary after document-frequency filtering")

// Vectorize builds the TF-IDF matrix for the given titles.
func Vectorize(titles []string, cfg VectorizerConfig) (*Matrix, error) {
	if cfg.MinDF <= 0 {
		cfg.MinDF = 2
	}
	if cfg.MaxDFRatio <= 0 || cfg.MaxDFRatio > 1 {
		cfg.MaxDFRatio = 0.5
	}
	if cfg.NgramMax <= 0 {
		cfg.NgramMax = 2
	}

	numDocs := len(titles)
	if numDocs == 0 {
		return nil, errors.New("no titles to vectorize")
	}

	// Per-document term counts and corpus document frequencies.
	docTerms := make([]map[string]int, numDocs)
	df := make(map[string]int)
	for i, title := range titles {
		tokens := tokenize(title)

		counts := make(map[string]int)
		for n := 1; n <= cfg.NgramMax; n++ {
			for _, gram := range ngrams(tokens, n) {
				counts[gram]++
			}
		}
		docTerms[i] = counts

		for term := range counts {
			df[term]++
		}
	}

	// Vocabulary: terms surviving the df bounds, sorted for determinism.
	maxDF := int(cfg.MaxDFRatio * float64(numDocs))
	if maxDF < cfg.MinDF {
		maxDF = cfg.MinDF
	}
	var terms []string
	for term, count := range df {
		if count >= cfg.MinDF && count <= maxDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	// Smoothed IDF, then L2 row normalization.
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log(float64(1+numDocs)/float64(1+df[term])) + 1
	}

	tfidf := mat.NewDense(numDocs, len(terms), nil)
	for docIdx, counts := range docTerms {
		var norm float64
		for term, count := range counts {
			col, ok := index[term]
			if !ok {
				continue
			}
			w := float64(count) * idf[col]
			tfidf.Set(docIdx, col, w)
			norm += w * w
		}

		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range counts {
				if col, ok := index[term]; ok {
					tfidf.Set(docIdx, col, tfidf.At(docIdx, col)/norm)
				}
			}
		}
	}

	return &Matrix{TFIDF: tfidf, Terms: terms}, nil
}
