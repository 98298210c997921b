package main

import (
	"fmt"
	"os"

	"github.com/datadesk/scrub/internal/config"
	"github.com/datadesk/scrub/internal/model"
	"github.com/datadesk/scrub/internal/storage"
)

// readCleanedCSV loads a filename,title,url table produced by `scrub clean`.
func readCleanedCSV(path string) ([]model.Row, error) {
	path = config.ExpandPath(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := storage.ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// writeClassifiedCSV writes labeled rows to path, creating or truncating it.
func writeClassifiedCSV(path string, rows []model.ClassifiedRow, labelColumn string) error {
	path = config.ExpandPath(path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := storage.WriteClassified(f, rows, labelColumn); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// openStore builds the checkpoint backend selected by name.
func openStore(backend, dir, dbPath, labelColumn string) (storage.Store, error) {
	switch backend {
	case "local":
		return storage.NewLocalStore(config.ExpandPath(dir), labelColumn)
	case "sqlite":
		return storage.NewSQLiteStore(config.ExpandPath(dbPath))
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q (want local or sqlite)", backend)
	}
}
