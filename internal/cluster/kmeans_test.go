package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// twoBlobs builds six documents split across two well-separated regions of
// a 2-dimensional space.
func twoBlobs() *mat.Dense {
	return mat.NewDense(6, 2, []float64{
		1.0, 0.1,
		0.9, 0.0,
		1.1, 0.2,
		0.0, 1.0,
		0.1, 0.9,
		0.2, 1.1,
	})
}

func TestKMeans(t *testing.T) {
	t.Run("recovers separated groups", func(t *testing.T) {
		result, err := KMeans(twoBlobs(), KMeansConfig{K: 2, Restarts: 5, Seed: 42})
		require.NoError(t, err)
		require.Len(t, result.Assignments, 6)

		first := result.Assignments[0]
		assert.Equal(t, first, result.Assignments[1])
		assert.Equal(t, first, result.Assignments[2])

		second := result.Assignments[3]
		assert.NotEqual(t, first, second)
		assert.Equal(t, second, result.Assignments[4])
		assert.Equal(t, second, result.Assignments[5])
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		a, err := KMeans(twoBlobs(), KMeansConfig{K: 2, Restarts: 3, Seed: 7})
		require.NoError(t, err)
		b, err := KMeans(twoBlobs(), KMeansConfig{K: 2, Restarts: 3, Seed: 7})
		require.NoError(t, err)

		assert.Equal(t, a.Assignments, b.Assignments)
		assert.Equal(t, a.Inertia, b.Inertia)
	})

	t.Run("every document is assigned", func(t *testing.T) {
		result, err := KMeans(twoBlobs(), KMeansConfig{K: 3, Seed: 1})
		require.NoError(t, err)

		for _, c := range result.Assignments {
			assert.GreaterOrEqual(t, c, 0)
			assert.Less(t, c, 3)
		}
	})

	t.Run("rejects non-positive k", func(t *testing.T) {
		_, err := KMeans(twoBlobs(), KMeansConfig{K: 0})
		assert.Error(t, err)
	})

	t.Run("rejects k larger than document count", func(t *testing.T) {
		_, err := KMeans(twoBlobs(), KMeansConfig{K: 7})
		assert.Error(t, err)
	})
}

func TestTopTerms(t *testing.T) {
	result := &KMeansResult{
		Centroids: mat.NewDense(2, 3, []float64{
			0.9, 0.0, 0.3,
			0.0, 0.8, 0.0,
		}),
	}
	terms := []string{"black", "heritage", "history"}

	assert.Equal(t, []string{"black", "history"}, TopTerms(result, terms, 0, 2))
	// Zero-weight terms are never reported even when n allows more.
	assert.Equal(t, []string{"heritage"}, TopTerms(result, terms, 1, 3))
}
