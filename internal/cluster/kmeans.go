package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KMeansConfig controls the iterative centroid assignment. A fixed Seed
// makes results reproducible; Restarts guards against poor local minima.
type KMeansConfig struct {
	K             int
	Restarts      int
	MaxIterations int
	Seed          int64
}

// KMeansResult holds the best partition found across restarts.
type KMeansResult struct {
	// Assignments maps each document row to its cluster index [0, K).
	Assignments []int
	// Centroids has K rows in the vectorizer's term space.
	Centroids *mat.Dense
	// Inertia is the summed squared distance of documents to their centroid.
	Inertia float64
}

// KMeans partitions the rows of m into cfg.K clusters.
func KMeans(m *mat.Dense, cfg KMeansConfig) (*KMeansResult, error) {
	numDocs, _ := m.Dims()

	if cfg.K <= 0 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", cfg.K)
	}
	if cfg.K > numDocs {
		return nil, fmt.Errorf("cluster count %d exceeds document count %d", cfg.K, numDocs)
	}
	if cfg.Restarts <= 0 {
		cfg.Restarts = 10
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 100
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	best := &KMeansResult{Inertia: math.Inf(1)}
	for restart := 0; restart < cfg.Restarts; restart++ {
		result := runKMeans(m, cfg.K, cfg.MaxIterations, rng)
		if result.Inertia < best.Inertia {
			best = result
		}
	}

	return best, nil
}

func runKMeans(m *mat.Dense, k, maxIterations int, rng *rand.Rand) *KMeansResult {
	numDocs, numTerms := m.Dims()

	// Initialize centroids from k distinct documents.
	centroids := mat.NewDense(k, numTerms, nil)
	for i, docIdx := range rng.Perm(numDocs)[:k] {
		centroids.SetRow(i, mat.Row(nil, docIdx, m))
	}

	assignments := make([]int, numDocs)
	doc := make([]float64, numTerms)
	centroid := make([]float64, numTerms)

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		// Assignment step.
		for d := 0; d < numDocs; d++ {
			mat.Row(doc, d, m)

			nearest, nearestDist := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				mat.Row(centroid, c, centroids)
				dist := floats.Distance(doc, centroid, 2)
				if dist < nearestDist {
					nearest, nearestDist = c, dist
				}
			}

			if assignments[d] != nearest {
				assignments[d] = nearest
				changed = true
			}
		}

		if iter > 0 && !changed {
			break
		}

		// Update step: centroids become cluster means; an emptied cluster is
		// reseeded from a random document.
		counts := make([]int, k)
		sums := mat.NewDense(k, numTerms, nil)
		for d := 0; d < numDocs; d++ {
			c := assignments[d]
			counts[c]++
			mat.Row(doc, d, m)
			for t := 0; t < numTerms; t++ {
				sums.Set(c, t, sums.At(c, t)+doc[t])
			}
		}

		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				centroids.SetRow(c, mat.Row(nil, rng.Intn(numDocs), m))
				continue
			}
			for t := 0; t < numTerms; t++ {
				centroids.Set(c, t, sums.At(c, t)/float64(counts[c]))
			}
		}
	}

	// Final inertia over the converged assignment.
	var inertia float64
	for d := 0; d < numDocs; d++ {
		mat.Row(doc, d, m)
		mat.Row(centroid, assignments[d], centroids)
		dist := floats.Distance(doc, centroid, 2)
		inertia += dist * dist
	}

	return &KMeansResult{
		Assignments: assignments,
		Centroids:   centroids,
		Inertia:     inertia,
	}
}

// TopTerms returns the n highest-weighted vocabulary terms for one cluster's
// centroid.
func TopTerms(result *KMeansResult, terms []string, clusterIdx, n int) []string {
	_, numTerms := result.Centroids.Dims()

	order := make([]int, numTerms)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		wa := result.Centroids.At(clusterIdx, order[a])
		wb := result.Centroids.At(clusterIdx, order[b])
		if wa != wb {
			return wa > wb
		}
		return terms[order[a]] < terms[order[b]]
	})

	if n > len(order) {
		n = len(order)
	}
	top := make([]string, 0, n)
	for _, idx := range order[:n] {
		if result.Centroids.At(clusterIdx, idx) <= 0 {
			break
		}
		top = append(top, terms[idx])
	}
	return top
}
