// Package runner drives classification across the full title set in
// fixed-size, individually checkpointed chunks, so an interrupted run can
// resume without repeating finished work.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/datadesk/scrub/internal/model"
	"github.com/datadesk/scrub/internal/storage"
)

// Classifier assigns a label to one title.
type Classifier interface {
	Classify(ctx context.Context, title string) (string, error)
}

// DefaultChunkSize is how many titles are classified per checkpoint.
const DefaultChunkSize = 250

// reconcileKey is the checkpoint key for the reconciliation pass.
const reconcileKey = "missing_titles"

// Runner partitions the normalized title set into chunks, classifies each
// one sequentially, and checkpoints per chunk. A chunk whose checkpoint
// already exists is loaded as-is and never re-classified.
type Runner struct {
	classifier Classifier
	store      storage.Store
	logger     *slog.Logger
	progress   io.Writer
	keyPrefix  string
	chunkSize  int
}

// Config holds runner options.
type Config struct {
	// ChunkSize defaults to DefaultChunkSize when <= 0.
	ChunkSize int
	// Progress receives per-chunk progress bars; nil disables them.
	Progress io.Writer
	// KeyPrefix namespaces checkpoint keys, so runs against different
	// taxonomies can share one checkpoint store without colliding.
	KeyPrefix string
}

// New creates a runner over the given classifier and checkpoint store.
func New(classifier Classifier, store storage.Store, cfg Config, logger *slog.Logger) *Runner {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		classifier: classifier,
		store:      store,
		logger:     logger,
		progress:   cfg.Progress,
		keyPrefix:  cfg.KeyPrefix,
		chunkSize:  cfg.ChunkSize,
	}
}

func (r *Runner) chunkKey(index int) string {
	return fmt.Sprintf("%schunk_%d", r.keyPrefix, index)
}

// Run classifies every row in chunk order and returns the combined result,
// preserving chunk order and within-chunk order. A classification failure
// aborts the in-progress chunk with nothing persisted for it, so a rerun
// retries that chunk from scratch.
func (r *Runner) Run(ctx context.Context, rows []model.Row) ([]model.ClassifiedRow, error) {
	numChunks := (len(rows) + r.chunkSize - 1) / r.chunkSize
	combined := make([]model.ClassifiedRow, 0, len(rows))

	r.logger.Info("processing titles in chunks",
		"titles", len(rows),
		"chunks", numChunks,
		"chunk_size", r.chunkSize)

	for i := 1; i <= numChunks; i++ {
		start := (i - 1) * r.chunkSize
		end := min(i*r.chunkSize, len(rows))
		chunk := rows[start:end]
		key := r.chunkKey(i)

		exists, err := r.store.Exists(ctx, key)
		if err != nil {
			return nil, err
		}

		if exists {
			loaded, err := r.store.Load(ctx, key)
			if err != nil {
				return nil, err
			}

			// Diagnostic only; missing labels do not trigger recovery.
			empty := 0
			for _, row := range loaded {
				if row.Label == "" {
					empty++
				}
			}
			r.logger.Info("loaded existing checkpoint",
				"chunk", i,
				"rows", len(loaded),
				"empty_labels", empty)

			combined = append(combined, loaded...)
			continue
		}

		classified, err := r.classifyAll(ctx, chunk, fmt.Sprintf("Classifying chunk %d/%d", i, numChunks))
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}

		if err := r.store.Save(ctx, key, classified); err != nil {
			return nil, err
		}
		r.logger.Info("completed chunk", "chunk", i, "chunks", numChunks, "rows", len(classified))

		combined = append(combined, classified...)
	}

	return combined, nil
}

// Reconcile classifies the titles present in rows but absent from combined.
// If a reconciliation checkpoint already exists it is reused unconditionally
// instead of recomputing. The returned slice is combined plus the
// reconciled rows appended once.
func (r *Runner) Reconcile(ctx context.Context, rows []model.Row, combined []model.ClassifiedRow) ([]model.ClassifiedRow, error) {
	key := r.keyPrefix + reconcileKey

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}

	if exists {
		loaded, err := r.store.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		r.logger.Info("reusing reconciliation checkpoint", "rows", len(loaded))
		return append(combined, loaded...), nil
	}

	have := make(map[string]struct{}, len(combined))
	for _, row := range combined {
		have[row.Title] = struct{}{}
	}

	var missing []model.Row
	for _, row := range rows {
		if _, ok := have[row.Title]; !ok {
			missing = append(missing, row)
		}
	}

	if len(missing) == 0 {
		r.logger.Info("no missing titles to reconcile")
		return combined, nil
	}

	r.logger.Info("classifying missing titles", "missing", len(missing))

	classified, err := r.classifyAll(ctx, missing, "Classifying missing titles")
	if err != nil {
		return nil, fmt.Errorf("reconciliation: %w", err)
	}

	if err := r.store.Save(ctx, key, classified); err != nil {
		return nil, err
	}

	return append(combined, classified...), nil
}

// classifyAll classifies one chunk-like unit sequentially, in order.
func (r *Runner) classifyAll(ctx context.Context, rows []model.Row, description string) ([]model.ClassifiedRow, error) {
	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	classified := make([]model.ClassifiedRow, 0, len(rows))
	for _, row := range rows {
		label, err := r.classifier.Classify(ctx, row.Title)
		if err != nil {
			return nil, err
		}
		classified = append(classified, model.ClassifiedRow{Row: row, Label: label})

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return classified, nil
}
