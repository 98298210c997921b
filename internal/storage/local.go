package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datadesk/scrub/internal/common"
	"github.com/datadesk/scrub/internal/model"
)

// LocalStore keeps one CSV file per checkpoint key in a directory. File
// existence is the sole "already done" signal; a later Save for the same
// key simply overwrites.
type LocalStore struct {
	dir         string
	labelColumn string
}

// NewLocalStore creates a local checkpoint store rooted at dir, creating
// the directory if needed.
func NewLocalStore(dir, labelColumn string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating checkpoint directory: %v", common.ErrCheckpointIO, err)
	}
	return &LocalStore{dir: dir, labelColumn: labelColumn}, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key+".csv")
}

// Exists reports whether a checkpoint has been written for key.
func (s *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	if _, err := os.Stat(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %v", common.ErrCheckpointIO, key, err)
	}
	return true, nil
}

// Load reads the checkpoint stored under key.
func (s *LocalStore) Load(_ context.Context, key string) ([]model.ClassifiedRow, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, key)
		}
		return nil, fmt.Errorf("%w: opening %s: %v", common.ErrCheckpointIO, key, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadClassified(f, s.labelColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", common.ErrCheckpointIO, key, err)
	}
	return rows, nil
}

// Save writes the checkpoint for key, replacing any existing file.
func (s *LocalStore) Save(_ context.Context, key string, rows []model.ClassifiedRow) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCheckpoint, key)
	}

	f, err := os.Create(s.path(key))
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", common.ErrCheckpointIO, key, err)
	}

	if err := WriteClassified(f, rows, s.labelColumn); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: writing %s: %v", common.ErrCheckpointIO, key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", common.ErrCheckpointIO, key, err)
	}
	return nil
}
