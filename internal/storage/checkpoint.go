// Package storage persists classification checkpoints. The presence of a
// checkpoint under a key is the resumption signal: once written, a
// checkpoint is treated as that chunk's permanent result and is never
// re-verified or invalidated.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/datadesk/scrub/internal/model"
)

// Store is the checkpoint store abstraction. Keys are chunk identities
// such as "chunk_7" or "missing_titles"; the backend (local CSV directory,
// SQLite database) is swappable without touching the runner's control flow.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Load(ctx context.Context, key string) ([]model.ClassifiedRow, error)
	Save(ctx context.Context, key string, rows []model.ClassifiedRow) error
}

// Common errors.
var (
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrInvalidKey         = errors.New("invalid checkpoint key")
	// ErrEmptyCheckpoint rejects saving a checkpoint with no rows. An empty
	// save would make file-backed and row-backed stores disagree on Exists,
	// and the runner never produces an empty chunk.
	ErrEmptyCheckpoint = errors.New("empty checkpoint")
)

// validateKey rejects keys that could escape the checkpoint namespace.
func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if strings.Contains(key, "/") || strings.Contains(key, "\\") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
