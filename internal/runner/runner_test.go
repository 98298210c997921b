package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datadesk/scrub/internal/model"
	"github.com/datadesk/scrub/internal/normalize"
	"github.com/datadesk/scrub/internal/storage"
)

// countingClassifier labels titles deterministically and records each call.
type countingClassifier struct {
	calls  []string
	failOn string
}

func (c *countingClassifier) Classify(_ context.Context, title string) (string, error) {
	c.calls = append(c.calls, title)
	if c.failOn != "" && title == c.failOn {
		return "", errors.New("classification failed")
	}
	return "label:" + title, nil
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), "type")
	require.NoError(t, err)
	return store
}

func titleRows(titles ...string) []model.Row {
	rows := make([]model.Row, len(titles))
	for i, title := range titles {
		rows[i] = model.Row{Filename: fmt.Sprintf("%d.jpg", i), Title: title}
	}
	return rows
}

func titles(rows []model.ClassifiedRow) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Title
	}
	return out
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("partitions into ceil(N/C) ordered chunks", func(t *testing.T) {
		store := newTestStore(t)
		classifier := &countingClassifier{}
		r := New(classifier, store, Config{ChunkSize: 2}, nil)

		rows := titleRows("A", "B", "C", "D", "E")
		combined, err := r.Run(ctx, rows)
		require.NoError(t, err)

		// Order preserved, every row classified exactly once.
		assert.Equal(t, []string{"A", "B", "C", "D", "E"}, titles(combined))
		assert.Equal(t, []string{"A", "B", "C", "D", "E"}, classifier.calls)
		assert.Equal(t, "label:A", combined[0].Label)

		// ceil(5/2) = 3 checkpoints.
		for i := 1; i <= 3; i++ {
			ok, err := store.Exists(ctx, fmt.Sprintf("chunk_%d", i))
			require.NoError(t, err)
			assert.True(t, ok, "chunk_%d", i)
		}
		ok, err := store.Exists(ctx, "chunk_4")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rerun with checkpoints performs zero calls", func(t *testing.T) {
		store := newTestStore(t)
		rows := titleRows("A", "B", "C")

		first, err := New(&countingClassifier{}, store, Config{ChunkSize: 2}, nil).Run(ctx, rows)
		require.NoError(t, err)

		rerunClassifier := &countingClassifier{}
		second, err := New(rerunClassifier, store, Config{ChunkSize: 2}, nil).Run(ctx, rows)
		require.NoError(t, err)

		assert.Empty(t, rerunClassifier.calls)
		assert.Equal(t, first, second)
	})

	t.Run("failure mid-chunk persists nothing for that chunk", func(t *testing.T) {
		store := newTestStore(t)
		classifier := &countingClassifier{failOn: "C"}
		r := New(classifier, store, Config{ChunkSize: 2}, nil)

		_, err := r.Run(ctx, titleRows("A", "B", "C", "D"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chunk 2")

		ok, err := store.Exists(ctx, "chunk_1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Exists(ctx, "chunk_2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		classifier := &countingClassifier{}
		r := New(classifier, newTestStore(t), Config{ChunkSize: 2}, nil)

		combined, err := r.Run(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, combined)
		assert.Empty(t, classifier.calls)
	})

	t.Run("key prefix isolates runs sharing a store", func(t *testing.T) {
		store := newTestStore(t)
		rows := titleRows("A", "B")

		themeClassifier := &countingClassifier{}
		themed := New(themeClassifier, store, Config{ChunkSize: 2, KeyPrefix: "theme_"}, nil)
		_, err := themed.Run(ctx, rows)
		require.NoError(t, err)

		ok, err := store.Exists(ctx, "theme_chunk_1")
		require.NoError(t, err)
		assert.True(t, ok)

		// A differently-prefixed run never sees the first run's
		// checkpoints and classifies everything itself.
		typeClassifier := &countingClassifier{}
		typed := New(typeClassifier, store, Config{ChunkSize: 2, KeyPrefix: "type_"}, nil)
		combined, err := typed.Run(ctx, rows)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, typeClassifier.calls)
		assert.Len(t, combined, 2)

		ok, err = store.Exists(ctx, "type_chunk_1")
		require.NoError(t, err)
		assert.True(t, ok)

		// The reconciliation checkpoint is prefixed too.
		_, err = typed.Reconcile(ctx, titleRows("A", "B", "C"), combined)
		require.NoError(t, err)
		ok, err = store.Exists(ctx, "type_missing_titles")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRunnerReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies exactly the missing titles", func(t *testing.T) {
		store := newTestStore(t)
		classifier := &countingClassifier{}
		r := New(classifier, store, Config{ChunkSize: 2}, nil)

		rows := titleRows("Title A", "Title B", "Title C")
		combined := []model.ClassifiedRow{
			{Row: model.Row{Title: "Title B"}, Label: "label:Title B"},
		}

		result, err := r.Reconcile(ctx, rows, combined)
		require.NoError(t, err)

		assert.Equal(t, []string{"Title A", "Title C"}, classifier.calls)
		assert.Equal(t, []string{"Title B", "Title A", "Title C"}, titles(result))

		ok, err := store.Exists(ctx, "missing_titles")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reuses an existing reconciliation checkpoint", func(t *testing.T) {
		store := newTestStore(t)
		reconciled := []model.ClassifiedRow{
			{Row: model.Row{Title: "Title A"}, Label: "label:Title A"},
		}
		require.NoError(t, store.Save(ctx, "missing_titles", reconciled))

		classifier := &countingClassifier{}
		r := New(classifier, store, Config{ChunkSize: 2}, nil)

		rows := titleRows("Title A", "Title B")
		combined := []model.ClassifiedRow{
			{Row: model.Row{Title: "Title B"}, Label: "label:Title B"},
		}

		result, err := r.Reconcile(ctx, rows, combined)
		require.NoError(t, err)

		assert.Empty(t, classifier.calls)
		assert.Equal(t, []string{"Title B", "Title A"}, titles(result))
	})

	t.Run("nothing missing leaves combined untouched", func(t *testing.T) {
		store := newTestStore(t)
		classifier := &countingClassifier{}
		r := New(classifier, store, Config{ChunkSize: 2}, nil)

		rows := titleRows("Title A")
		combined := []model.ClassifiedRow{
			{Row: model.Row{Title: "Title A"}, Label: "label:Title A"},
		}

		result, err := r.Reconcile(ctx, rows, combined)
		require.NoError(t, err)

		assert.Empty(t, classifier.calls)
		assert.Equal(t, combined, result)

		ok, err := store.Exists(ctx, "missing_titles")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNormalizeThenRun(t *testing.T) {
	// Duplicate and noise titles are dropped before chunking: three raw rows
	// reduce to one classified row in a single chunk.
	ctx := context.Background()

	raw := []model.Row{
		{Filename: "a.jpg", Title: "Black History Month Celebration"},
		{Filename: "b.jpg", Title: "Black History Month Celebration"},
		{Filename: "c.jpg", Title: "X7f3"},
	}

	result := normalize.Normalize(raw)
	require.Len(t, result.Rows, 1)

	store := newTestStore(t)
	classifier := &countingClassifier{}
	combined, err := New(classifier, store, Config{ChunkSize: 2}, nil).Run(ctx, result.Rows)
	require.NoError(t, err)

	require.Len(t, combined, 1)
	assert.Equal(t, "Black History Month Celebration", combined[0].Title)
	assert.Equal(t, "label:Black History Month Celebration", combined[0].Label)
	assert.Len(t, classifier.calls, 1)

	ok, err := store.Exists(ctx, "chunk_1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "chunk_2")
	require.NoError(t, err)
	assert.False(t, ok)
}
